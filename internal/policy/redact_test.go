package policy_test

import (
	"testing"

	"taskhub/internal/model"
	"taskhub/internal/policy"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func commentFixture(author *model.User, anonymous bool) *model.Comment {
	return &model.Comment{
		ID:          uuid.New(),
		TaskID:      uuid.New(),
		Content:     "some comment text",
		IsAnonymous: anonymous,
		CreatedBy:   author.ID,
	}
}

func authorFixture() *model.User {
	return &model.User{
		ID:    uuid.New(),
		Name:  "Frank Author",
		Email: "frank@example.com",
		Role:  model.RoleTeamMember,
	}
}

func TestRedactComment_AnonymousHidesAuthorFromStranger(t *testing.T) {
	// Arrange
	author := authorFixture()
	comment := commentFixture(author, true)
	viewer := policy.Identity{ID: uuid.New(), Role: model.RoleTeamMember}

	// Act
	view := policy.RedactComment(viewer, comment, author)

	// Assert: ничего, что идентифицирует автора, не должно просочиться
	assert.Equal(t, policy.AnonymousAuthor, view.Author.Name)
	assert.Empty(t, view.Author.ID)
	assert.Empty(t, view.Author.Email)
	assert.NotContains(t, view.Author.Name, author.Name)
	assert.True(t, view.IsAnonymous)
	assert.Equal(t, comment.Content, view.Content)
}

func TestRedactComment_AuthorSeesThemself(t *testing.T) {
	// Arrange
	author := authorFixture()
	comment := commentFixture(author, true)
	viewer := policy.Identity{ID: author.ID, Role: model.RoleTeamMember}

	// Act
	view := policy.RedactComment(viewer, comment, author)

	// Assert: автор видит собственное имя на анонимном комментарии
	assert.Equal(t, author.Name, view.Author.Name)
	assert.Equal(t, author.ID.String(), view.Author.ID)
	assert.Equal(t, author.Email, view.Author.Email)
	assert.True(t, view.IsAnonymous)
}

func TestRedactComment_AdminSeesAuthor(t *testing.T) {
	// Arrange
	author := authorFixture()
	comment := commentFixture(author, true)
	viewer := policy.Identity{ID: uuid.New(), Role: model.RoleAdmin}

	// Act
	view := policy.RedactComment(viewer, comment, author)

	// Assert
	assert.Equal(t, author.Name, view.Author.Name)
	assert.Equal(t, author.ID.String(), view.Author.ID)
}

func TestRedactComment_NonAnonymousPassesThrough(t *testing.T) {
	// Arrange
	author := authorFixture()
	comment := commentFixture(author, false)
	viewer := policy.Identity{ID: uuid.New(), Role: model.RoleClient}

	// Act
	view := policy.RedactComment(viewer, comment, author)

	// Assert
	assert.Equal(t, author.Name, view.Author.Name)
	assert.Equal(t, author.ID.String(), view.Author.ID)
	assert.Equal(t, author.Email, view.Author.Email)
	assert.False(t, view.IsAnonymous)
}

// Свойство из раздела проверяемых инвариантов: для любой роли, кроме
// админа, и любого чужого анонимного комментария автор не виден.
func TestRedactComment_Property_NoLeakForNonAdminStrangers(t *testing.T) {
	author := authorFixture()
	comment := commentFixture(author, true)

	for _, role := range []string{model.RoleTeamLeader, model.RoleTeamMember, model.RoleClient} {
		viewer := policy.Identity{ID: uuid.New(), Role: role}

		view := policy.RedactComment(viewer, comment, author)

		assert.NotEqual(t, author.ID.String(), view.Author.ID, "role %s leaked author id", role)
		assert.NotEqual(t, author.Name, view.Author.Name, "role %s leaked author name", role)
		assert.NotEqual(t, author.Email, view.Author.Email, "role %s leaked author email", role)
	}
}
