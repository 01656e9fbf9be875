package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexFloat accepts a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(s)
		if s == "" {
			*f = 0
			return nil
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", s)
		}
		*f = FlexFloat(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = FlexFloat(v)
	return nil
}

type MapInput struct {
	Location  string    `json:"location"`
	Latitude  FlexFloat `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude FlexFloat `json:"longitude" validate:"gte=-180,lte=180"`
}

// HireRequest leaves every field optional; an empty users list is reported
// by the hiring use case.
type HireRequest struct {
	Date     string   `json:"date"`
	Schedule string   `json:"schedule"`
	Map      MapInput `json:"map"`
	Users    []string `json:"users"`
}

type RespondRequest struct {
	RequestID string `json:"requestId"`
}

type AvailabilityQuery struct {
	Role    string `query:"role" validate:"required,role"`
	Date    string `query:"date"`
	StartAt string `query:"startAt" validate:"omitempty,clock"`
	EndAt   string `query:"endAt" validate:"omitempty,clock"`
	Page    string `query:"page"`
	Limit   string `query:"limit"`
}

type RequestListQuery struct {
	Type   string `query:"type" validate:"omitempty,oneof=SENT RECEIVED sent received"`
	Status string `query:"status" validate:"omitempty,oneof=PENDING ACCEPTED REJECTED pending accepted rejected"`
}
