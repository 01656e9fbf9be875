package repository

import (
	"encoding/json"
	"fmt"

	"tha-drop/internal/domain/user"
)

const profileColumns = `p.id, p.account_id, p.name, p.address, p.date_of_birth, p.avatar,
	p.phone_number, p.license_photo, p.is_restaurant_owner, p.restaurant_name,
	p.rating, p.schedule, p.created_at, p.updated_at`

const requestColumns = `id, owner_id, type, status, date, schedule, location, latitude, longitude,
	counterparty_id, counterparty_name, counterparty_avatar, counterparty_rating, created_at, updated_at`

type scanner interface {
	Scan(dest ...any) error
}

// profileDest returns the scan targets for profileColumns. The schedule is
// decoded by finishProfile once the row has been read.
func profileDest(p *user.Profile, schedule *[]byte) []any {
	return []any{
		&p.ID, &p.AccountID, &p.Name, &p.Address, &p.DateOfBirth, &p.Avatar,
		&p.PhoneNumber, &p.LicensePhoto, &p.IsRestaurantOwner, &p.RestaurantName,
		&p.Rating, schedule, &p.CreatedAt, &p.UpdatedAt,
	}
}

func finishProfile(p *user.Profile, schedule []byte) error {
	p.Schedule = []user.AvailabilityInterval{}
	if len(schedule) == 0 {
		return nil
	}
	if err := json.Unmarshal(schedule, &p.Schedule); err != nil {
		return fmt.Errorf("decode schedule of profile %s: %w", p.ID, err)
	}
	return nil
}

func encodeSchedule(schedule []user.AvailabilityInterval) (string, error) {
	if schedule == nil {
		schedule = []user.AvailabilityInterval{}
	}
	b, err := json.Marshal(schedule)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func scanRequest(row scanner) (user.HiringRequest, error) {
	var r user.HiringRequest
	var typ, status string
	err := row.Scan(
		&r.ID, &r.OwnerID, &typ, &status, &r.Date, &r.Schedule,
		&r.Location.Label, &r.Location.Latitude, &r.Location.Longitude,
		&r.CounterpartyID, &r.CounterpartyName, &r.CounterpartyAvatar, &r.CounterpartyRating,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return user.HiringRequest{}, err
	}
	r.Type = user.RequestType(typ)
	r.Status = user.RequestStatus(status)
	return r, nil
}
