package models

// Business represents a marketplace business awaiting coordinate backfill.
type Business struct {
	ID      int    // ID is the unique identifier for the business.
	Address string // Address is the location to be geocoded.
}
