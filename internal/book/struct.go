package book

type Copy struct {
	ID          int  `json:"copy_id"`
	IsAvailable bool `json:"is_available"`
}

type Book struct {
	ID         int
	Title      string
	ISBN       string
	Quantity   int
	AuthorID   int
	AuthorName string
	GenreID    int
	GenreName  string
	Copies     []Copy
}

// IsAvailable reports whether at least one copy is on the shelf.
func (b *Book) IsAvailable() bool {
	for _, c := range b.Copies {
		if c.IsAvailable {
			return true
		}
	}
	return false
}

// NewBook carries the fields of a staff create request.
type NewBook struct {
	Title      string
	ISBN       string
	AuthorName string
	GenreName  string
	Copies     int
}

// BookUpdate carries a partial update; nil fields are left unchanged.
type BookUpdate struct {
	Title      *string
	ISBN       *string
	AuthorName *string
	GenreName  *string
}

type createRequest struct {
	Title      string `json:"title"`
	ISBN       string `json:"isbn"`
	AuthorName string `json:"author_name_input"`
	GenreName  string `json:"genre_name_input"`
	CopyNumber *int   `json:"copy_number"`
}

type updateRequest struct {
	Title      *string `json:"title"`
	ISBN       *string `json:"isbn"`
	AuthorName *string `json:"author_name_input"`
	GenreName  *string `json:"genre_name_input"`
}

type bookResponse struct {
	BookID      int    `json:"book_id"`
	Title       string `json:"title"`
	AuthorName  string `json:"author_name"`
	ISBN        string `json:"isbn"`
	GenreName   string `json:"genre_name"`
	IsAvailable bool   `json:"is_available"`
	Copies      []Copy `json:"copies"`
}

func newBookResponse(b *Book) bookResponse {
	copies := b.Copies
	if copies == nil {
		copies = []Copy{}
	}
	return bookResponse{
		BookID:      b.ID,
		Title:       b.Title,
		AuthorName:  b.AuthorName,
		ISBN:        b.ISBN,
		GenreName:   b.GenreName,
		IsAvailable: b.IsAvailable(),
		Copies:      copies,
	}
}

type copyReturnResponse struct {
	CopyID        int    `json:"copy_id"`
	ReservationID *int   `json:"reservation_id"`
	Message       string `json:"message"`
}
