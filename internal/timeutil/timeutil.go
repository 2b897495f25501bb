package timeutil

import "time"

var riyadhLocation = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Riyadh")
	if err != nil {
		return time.FixedZone("Asia/Riyadh", 3*60*60)
	}
	return loc
}

// Now returns the current time in Asia/Riyadh timezone.
func Now() time.Time {
	return time.Now().In(riyadhLocation)
}

// InRiyadh converts provided time to Asia/Riyadh timezone.
func InRiyadh(t time.Time) time.Time {
	return t.In(riyadhLocation)
}

// Location returns Asia/Riyadh location instance.
func Location() *time.Location {
	return riyadhLocation
}
