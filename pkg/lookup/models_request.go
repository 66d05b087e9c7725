package lookup

type Request struct {
	Email string `json:"email"`
}
