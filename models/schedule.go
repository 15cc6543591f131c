package models

import (
	"strings"
	"time"
)

// Schedule is a calendar entry. End time is not required to be after the
// start time; clients may store whatever ordering they like.
type Schedule struct {
	Meta        `bson:",inline"`
	Title       string    `bson:"title" json:"title"`
	Description string    `bson:"description" json:"description"`
	StartTime   time.Time `bson:"startTime" json:"startTime"`
	EndTime     time.Time `bson:"endTime" json:"endTime"`
	Location    string    `bson:"location" json:"location"`
}

func (s *Schedule) Normalize() {
	s.Title = strings.TrimSpace(s.Title)
	s.Description = strings.TrimSpace(s.Description)
	s.Location = strings.TrimSpace(s.Location)
}

func (s *Schedule) Validate() error {
	if s.Title == "" {
		return requiredField("title", "Please provide a schedule title")
	}
	if s.StartTime.IsZero() {
		return requiredField("startTime", "Please provide a start time")
	}
	if s.EndTime.IsZero() {
		return requiredField("endTime", "Please provide an end time")
	}
	return nil
}

type SchedulePatch struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Location    *string    `json:"location"`
}

func (p *SchedulePatch) Apply(s *Schedule) {
	if p.Title != nil {
		s.Title = *p.Title
	}
	if p.Description != nil {
		s.Description = *p.Description
	}
	if p.StartTime != nil {
		s.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		s.EndTime = *p.EndTime
	}
	if p.Location != nil {
		s.Location = *p.Location
	}
}
