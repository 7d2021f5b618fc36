package httpapi

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notekeeper/internal/server/models"
	"github.com/dmitrijs2005/notekeeper/internal/server/services"
)

// TagList accepts either a JSON array of strings or a single comma-separated
// string, so both API clients and plain HTML forms can submit tags.
type TagList []string

func (t *TagList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*t = TagList(services.ParseTags(raw))
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("tags must be a string or an array of strings")
	}
	*t = TagList(services.NormalizeTags(list))
	return nil
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type noteCreateRequest struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    TagList  `json:"tags"`
	Media   []string `json:"media"`
}

// noteUpdateRequest distinguishes absent fields from empty ones; only the
// fields present in the request body are applied.
type noteUpdateRequest struct {
	Title   *string   `json:"title"`
	Content *string   `json:"content"`
	Tags    *TagList  `json:"tags"`
	Media   *[]string `json:"media"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
}

type loginResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

type noteResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	Media     []string  `json:"media"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type contactResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type uploadURLResponse struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type mediaURLResponse struct {
	URL string `json:"url"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.Username, IsAdmin: u.IsAdmin}
}

func toNoteResponse(n *models.Note) noteResponse {
	return noteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Tags:      n.Tags,
		Media:     n.Media,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func toNoteResponses(notes []models.Note) []noteResponse {
	out := make([]noteResponse, 0, len(notes))
	for i := range notes {
		out = append(out, toNoteResponse(&notes[i]))
	}
	return out
}

func toContactResponse(m *models.ContactMessage) contactResponse {
	return contactResponse{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Subject:   m.Subject,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}
