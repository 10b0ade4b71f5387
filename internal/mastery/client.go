// ABOUTME: Mastery collaborator stub returning a fixed learning-state estimate
// ABOUTME: Will be replaced by a real backend call later
package mastery

// Record is the mastery estimate for one student and skill
type Record struct {
	MasteryAfter float64 `json:"mastery_after"`
	MasteryLevel string  `json:"mastery_level"`
}

// Client answers mastery lookups. The stub implementation returns a
// constant mid-range estimate for every student.
type Client struct{}

// NewClient creates the stub mastery client
func NewClient() *Client {
	return &Client{}
}

// GetMastery returns the mastery estimate for a student token and skill
func (c *Client) GetMastery(studentToken string, skillID int) (Record, error) {
	return Record{MasteryAfter: 0.5, MasteryLevel: "learning"}, nil
}
