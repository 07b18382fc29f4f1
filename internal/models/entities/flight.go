package entities

import "strings"

// StopCount is the categorical stop-count label carried by the dataset.
// The source data buckets the true stop count into three labels.
type StopCount string

const (
	StopsZero      StopCount = "zero"
	StopsOne       StopCount = "one"
	StopsTwoOrMore StopCount = "two_or_more"
)

// Ceiling maps the categorical label to a numeric ceiling usable in
// "max stops" comparisons. Matching is case-insensitive; unrecognized
// labels map to 2, the dataset's pessimistic default for unseen
// categories.
func (s StopCount) Ceiling() int {
	switch StopCount(strings.ToLower(string(s))) {
	case StopsZero:
		return 0
	case StopsOne:
		return 1
	default:
		return 2
	}
}

// CabinClass is the seat class label.
type CabinClass string

const (
	ClassEconomy  CabinClass = "Economy"
	ClassBusiness CabinClass = "Business"
)

// TimeBucket is the coarse time-of-day label used for departure and
// arrival times. The dataset does not carry true timestamps.
type TimeBucket string

const (
	BucketEarlyMorning TimeBucket = "Early_Morning"
	BucketMorning      TimeBucket = "Morning"
	BucketAfternoon    TimeBucket = "Afternoon"
	BucketEvening      TimeBucket = "Evening"
	BucketNight        TimeBucket = "Night"
	BucketLateNight    TimeBucket = "Late_Night"
)

var bucketOrder = map[TimeBucket]int{
	BucketEarlyMorning: 0,
	BucketMorning:      1,
	BucketAfternoon:    2,
	BucketEvening:      3,
	BucketNight:        4,
	BucketLateNight:    5,
}

// Order returns the ordinal position of the bucket within a day.
// Unknown buckets sort last.
func (b TimeBucket) Order() int {
	if o, ok := bucketOrder[b]; ok {
		return o
	}
	return len(bucketOrder)
}

// Flight is one priced row of the flight dataset. ID is the stable row
// identity and must be unique within a candidate set.
type Flight struct {
	ID              int64      `db:"id" json:"id"`
	Airline         string     `db:"airline" json:"airline"`
	FlightNumber    string     `db:"flight_number" json:"flight_number"`
	SourceCity      string     `db:"source_city" json:"source_city"`
	DestinationCity string     `db:"destination_city" json:"destination_city"`
	Stops           StopCount  `db:"stops" json:"stops"`
	Class           CabinClass `db:"class" json:"class"`
	DepartureTime   TimeBucket `db:"departure_time" json:"departure_time"`
	ArrivalTime     TimeBucket `db:"arrival_time" json:"arrival_time"`
	DurationHours   float64    `db:"duration" json:"duration_hours"`
	DaysLeft        int        `db:"days_left" json:"days_left"`
	Price           float64    `db:"price" json:"price"`
}
