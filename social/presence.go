package social

import "cafehopper/models"

// Partition splits a friend list into those currently studying somewhere and
// those who are not. Every input user lands in exactly one of the two slices.
func Partition(friends []models.User) (studying, notStudying []models.User) {
	studying = make([]models.User, 0, len(friends))
	notStudying = make([]models.User, 0, len(friends))
	for _, f := range friends {
		if f.Studying() {
			studying = append(studying, f)
		} else {
			notStudying = append(notStudying, f)
		}
	}
	return studying, notStudying
}

// FriendsAt returns the friends whose location is the given cafe.
func FriendsAt(friends []models.User, cafeID string) []models.User {
	here := make([]models.User, 0, len(friends))
	for _, f := range friends {
		if f.Location != nil && *f.Location == cafeID {
			here = append(here, f)
		}
	}
	return here
}
