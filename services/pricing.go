package services

import (
	"fmt"
	"math"
	"time"

	"heaven-palace/models"
)

const day = 24 * time.Hour

// Nights returns the number of nights between check-in and check-out.
// A missing date or a check-out not strictly after check-in yields 1 so a
// half-filled draft never prices at zero or below.
func Nights(checkIn, checkOut *time.Time) int {
	if checkIn == nil || checkOut == nil || !checkOut.After(*checkIn) {
		return 1
	}
	return int(math.Ceil(float64(checkOut.Sub(*checkIn)) / float64(day)))
}

// Catalog holds the rooms and add-ons a draft is priced against.
type Catalog struct {
	Rooms  []models.Room
	AddOns []models.AddOn
}

func (c Catalog) Room(id uint) (models.Room, bool) {
	for _, r := range c.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}

func (c Catalog) AddOn(id uint) (models.AddOn, bool) {
	for _, a := range c.AddOns {
		if a.ID == id {
			return a, true
		}
	}
	return models.AddOn{}, false
}

type LineItem struct {
	Label  string `json:"label"`
	AddOn  uint   `json:"addon_id,omitempty"`
	Amount int64  `json:"amount"`
}

type Quote struct {
	Nights   int        `json:"nights"`
	Guests   int        `json:"guests"`
	RoomLine int64      `json:"room_line"`
	Lines    []LineItem `json:"lines"`
	// Skipped lists selected add-on ids missing from the catalog.
	Skipped []uint `json:"skipped,omitempty"`
	Total   int64  `json:"total"`
}

// AddOnContribution is what a single add-on adds to a stay.
func AddOnContribution(a models.AddOn, guests, nights int) int64 {
	if a.PricingMode == models.PricingPerGuestPerNight {
		return a.Price * int64(guests) * int64(nights)
	}
	return a.Price
}

// PriceLines prices a stay. room may be nil while the guest is still
// choosing; the room line is then zero.
func PriceLines(room *models.Room, nights, guests int, selected []uint, addons []models.AddOn) Quote {
	q := Quote{Nights: nights, Guests: guests}
	if room != nil {
		q.RoomLine = room.Price * int64(nights)
		q.Lines = append(q.Lines, LineItem{
			Label:  fmt.Sprintf("%s x %d night(s)", room.Name, nights),
			Amount: q.RoomLine,
		})
	}

	cat := Catalog{AddOns: addons}
	for _, id := range selected {
		a, ok := cat.AddOn(id)
		if !ok {
			q.Skipped = append(q.Skipped, id)
			continue
		}
		q.Lines = append(q.Lines, LineItem{
			Label:  a.Name,
			AddOn:  a.ID,
			Amount: AddOnContribution(a, guests, nights),
		})
	}

	q.Total = Total(q)
	return q
}

// Total sums the room line and every add-on line.
func Total(q Quote) int64 {
	var sum int64
	for _, l := range q.Lines {
		sum += l.Amount
	}
	return sum
}

// QuoteDraft resolves a draft against the catalog and prices it.
func QuoteDraft(d Draft, cat Catalog) Quote {
	var room *models.Room
	if d.RoomID != nil {
		if r, ok := cat.Room(*d.RoomID); ok {
			room = &r
		}
	}
	return PriceLines(room, Nights(d.CheckIn, d.CheckOut), d.Guests, d.AddOnIDs, cat.AddOns)
}
