package seeder

import _ "embed"

//go:embed fixtures/dev.yaml
var devFixture []byte

// Defaults seeds the development accounts.
func Defaults() []Seeder {
	return []Seeder{
		FixtureSeeder{Label: "dev-accounts", Data: devFixture},
	}
}
