package policy

import (
	"time"

	"taskhub/internal/model"
)

// AnonymousAuthor is the marker shown in place of a redacted author.
const AnonymousAuthor = "Anonymous"

// CommentAuthor identifies the author of a comment as exposed to a
// viewer. For redacted comments every field is zero except Name,
// which carries the AnonymousAuthor marker.
type CommentAuthor struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// CommentView is a comment as a particular viewer is allowed to see
// it. It is the only comment shape that leaves the service layer.
type CommentView struct {
	ID          string        `json:"id"`
	TaskID      string        `json:"task_id"`
	Content     string        `json:"content"`
	IsAnonymous bool          `json:"is_anonymous"`
	Author      CommentAuthor `json:"author"`
	CreatedAt   time.Time     `json:"created_at"`
}

// RedactComment builds the view of comment that id is allowed to see.
// For anonymous comments the author identity is stripped unless the
// viewer is the author or an admin. Redaction happens here, at the
// trust boundary, never in a client.
func RedactComment(id Identity, comment *model.Comment, author *model.User) CommentView {
	view := CommentView{
		ID:          comment.ID.String(),
		TaskID:      comment.TaskID.String(),
		Content:     comment.Content,
		IsAnonymous: comment.IsAnonymous,
		CreatedAt:   comment.CreatedAt,
	}

	if comment.IsAnonymous && comment.CreatedBy != id.ID && !id.IsAdmin() {
		view.Author = CommentAuthor{Name: AnonymousAuthor}
		return view
	}

	view.Author = CommentAuthor{
		ID:    comment.CreatedBy.String(),
		Name:  author.Name,
		Email: author.Email,
	}
	return view
}
