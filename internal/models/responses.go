package models

import "time"

// UserResponse is the public shape of a User. Token is set only on
// login/registration. Ideas and Bookmarks are nil unless those relations were
// loaded; a loaded empty relation encodes as [].
type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Created   time.Time       `json:"created"`
	Token     string          `json:"token,omitempty"`
	Ideas     *[]IdeaResponse `json:"ideas,omitempty"`
	Bookmarks *[]IdeaResponse `json:"bookmarks,omitempty"`
}

// IdeaResponse is the public shape of an Idea. Vote sets are reduced to counts,
// present only when the votes were loaded.
type IdeaResponse struct {
	ID          string             `json:"id"`
	Idea        string             `json:"idea"`
	Description string             `json:"description"`
	Created     time.Time          `json:"created"`
	Updated     time.Time          `json:"updated"`
	Author      *UserResponse      `json:"author,omitempty"`
	Upvotes     *int               `json:"upvotes,omitempty"`
	Downvotes   *int               `json:"downvotes,omitempty"`
	Comments    *[]CommentResponse `json:"comments,omitempty"`
}

type CommentResponse struct {
	ID      string        `json:"id"`
	Comment string        `json:"comment"`
	Created time.Time     `json:"created"`
	Author  *UserResponse `json:"author,omitempty"`
	Idea    *IdeaResponse `json:"idea,omitempty"`
}

// ToResponse projects the user. Pass a non-empty token to include it.
func (u *User) ToResponse(token string) *UserResponse {
	res := &UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Created:  u.CreatedAt,
		Token:    token,
	}
	if u.Ideas != nil {
		res.Ideas = projectIdeas(u.Ideas)
	}
	if u.Bookmarks != nil {
		res.Bookmarks = projectIdeas(u.Bookmarks)
	}
	return res
}

func (i *Idea) ToResponse() *IdeaResponse {
	res := &IdeaResponse{
		ID:          i.ID,
		Idea:        i.Idea,
		Description: i.Description,
		Created:     i.CreatedAt,
		Updated:     i.UpdatedAt,
	}
	if i.Author != nil {
		res.Author = i.Author.ToResponse("")
	}
	if i.Votes != nil {
		up, down := len(i.Upvoters()), len(i.Downvoters())
		res.Upvotes = &up
		res.Downvotes = &down
	}
	if i.Comments != nil {
		comments := make([]CommentResponse, 0, len(i.Comments))
		for idx := range i.Comments {
			comments = append(comments, *i.Comments[idx].ToResponse())
		}
		res.Comments = &comments
	}
	return res
}

func (c *Comment) ToResponse() *CommentResponse {
	res := &CommentResponse{
		ID:      c.ID,
		Comment: c.Comment,
		Created: c.CreatedAt,
	}
	if c.Author != nil {
		res.Author = c.Author.ToResponse("")
	}
	if c.Idea != nil {
		res.Idea = c.Idea.ToResponse()
	}
	return res
}

func projectIdeas(ideas []Idea) *[]IdeaResponse {
	out := make([]IdeaResponse, 0, len(ideas))
	for idx := range ideas {
		out = append(out, *ideas[idx].ToResponse())
	}
	return &out
}
