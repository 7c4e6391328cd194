package service

import (
	"time"

	"budgetmate/internal/model"
)

// UserRef is the display identity embedded in feed responses.
type UserRef struct {
	ID         uint64     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	AvatarSeed string     `json:"avatarSeed"`
	Role       model.Role `json:"role"`
}

type CommentView struct {
	ID        uint64    `json:"id"`
	User      UserRef   `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

type PostView struct {
	ID        uint64        `json:"id"`
	User      UserRef       `json:"user"`
	Title     string        `json:"title"`
	Content   string        `json:"content"`
	Category  string        `json:"category"`
	Likes     []uint64      `json:"likes"`
	Comments  []CommentView `json:"comments"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewUserRef(u *model.User) UserRef {
	return UserRef{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		AvatarSeed: u.AvatarSeed,
		Role:       u.Role,
	}
}

// NewPostView expects a post loaded with its thread.
func NewPostView(p *model.Post) PostView {
	v := PostView{
		ID:        p.ID,
		User:      NewUserRef(&p.Author),
		Title:     p.Title,
		Content:   p.Content,
		Category:  p.Category,
		Likes:     make([]uint64, 0, len(p.Likes)),
		Comments:  make([]CommentView, 0, len(p.Comments)),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	for _, l := range p.Likes {
		v.Likes = append(v.Likes, l.UserID)
	}
	for i := range p.Comments {
		c := &p.Comments[i]
		v.Comments = append(v.Comments, CommentView{
			ID:        c.ID,
			User:      NewUserRef(&c.Author),
			Text:      c.Text,
			CreatedAt: c.CreatedAt,
		})
	}
	return v
}
