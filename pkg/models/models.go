package models

import "time"

// Collection is one scheduled curbside pickup event.
type Collection struct {
	Date     time.Time `json:"date"`
	Category string    `json:"category"`
	Icon     string    `json:"icon"`
}

// Holiday is one town closing day parsed from the official holiday page.
// Federal carries the name of a coinciding US federal holiday, when one
// exists; it is display-only and never affects scheduling.
type Holiday struct {
	Date    time.Time `json:"date"`
	Name    string    `json:"name,omitempty"`
	Federal string    `json:"federal,omitempty"`
}

// Page represents a fetched HTML page plus fetch metadata
type Page struct {
	URL          string    `json:"url"`
	StatusCode   int       `json:"status_code"`
	HTML         string    `json:"html,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
	ResponseTime int64     `json:"response_time_ms"`
}

// FetchOptions contains options for fetching a single page
type FetchOptions struct {
	URL     string
	Fresh   bool // bypass the page cache even when caching is enabled
	Headers map[string]string
	Timeout time.Duration
}
