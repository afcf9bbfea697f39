// internal/models/review.go
package models

const (
	MinRating = 1
	MaxRating = 5
)

type HelpfulVote struct {
	UserID  string `json:"user" bson:"user"`
	Helpful bool   `json:"helpful" bson:"helpful"`
}

type Review struct {
	BaseModel `bson:",inline"`
	UserID    string        `json:"user" bson:"user"`
	VendorID  string        `json:"vendor" bson:"vendor"`
	Rating    int           `json:"rating" bson:"rating"`
	Title     string        `json:"title" bson:"title"`
	Comment   string        `json:"comment" bson:"comment"`
	Images    []string      `json:"images" bson:"images"`
	Helpful   []HelpfulVote `json:"helpful" bson:"helpful"`
	Verified  bool          `json:"verified" bson:"verified"`

	// Populated on read
	UserName  string `json:"userName,omitempty" bson:"-"`
	UserImage string `json:"userImage,omitempty" bson:"-"`
}

// HelpfulCount is the number of positive votes.
func (r *Review) HelpfulCount() int {
	n := 0
	for _, v := range r.Helpful {
		if v.Helpful {
			n++
		}
	}
	return n
}
