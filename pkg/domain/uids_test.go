package domain_test

import (
	"errors"
	"testing"

	"github.com/aretw0/lineage/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIDs_CaseInsensitive(t *testing.T) {
	uids := domain.NewUIDs()
	uids.Set("Auto", "abc")

	id, ok := uids.Get("auto")
	require.True(t, ok)
	assert.Equal(t, "abc", id)

	uids.Set("AUTO", "def")
	assert.Equal(t, 1, uids.Len())
	assert.Equal(t, []domain.Link{{Scope: "Auto", ID: "def"}}, uids.Items(), "first spelling is kept")
	assert.Equal(t, []domain.Link{{Scope: "auto", ID: "def"}}, uids.Keys())
}

func TestUIDs_InsertionOrder(t *testing.T) {
	uids := domain.NewUIDs()
	uids.Set("lab", "1")
	uids.Set("auto", "2")
	uids.Set("erp", "3")
	uids.Delete("AUTO")

	assert.Equal(t, []domain.Link{{Scope: "lab", ID: "1"}, {Scope: "erp", ID: "3"}}, uids.Items())

	clone := uids.Clone()
	clone.Set("extra", "4")
	assert.Equal(t, 2, uids.Len(), "clone must be independent")

	attrs := uids.Attributes()
	assert.Equal(t, "lab", attrs.Oldest().Key)
	assert.Equal(t, "erp", attrs.Newest().Key)
}

func TestUIDs_NilReceiver(t *testing.T) {
	var uids *domain.UIDs
	assert.Equal(t, 0, uids.Len())
	assert.Nil(t, uids.Items())
	_, ok := uids.Get("auto")
	assert.False(t, ok)
}

func TestLinkKey(t *testing.T) {
	l := domain.Link{Scope: "MyScope", ID: "Id-1"}
	assert.Equal(t, domain.Link{Scope: "myscope", ID: "Id-1"}, l.Key(), "only the scope is lowercased")
	assert.Equal(t, "MyScope:Id-1", l.String())
}

func TestErrors(t *testing.T) {
	var err error = &domain.MissingIdentifierError{Type: "process_run"}
	assert.True(t, errors.Is(err, domain.ErrMissingIdentifier))
	assert.Contains(t, err.Error(), "process_run")

	err = &domain.UnrecognizedTypeError{Value: "widget"}
	assert.True(t, errors.Is(err, domain.ErrUnrecognizedType))
	assert.Contains(t, err.Error(), `"widget"`)

	err = &domain.UnrecognizedTypeError{Value: 42}
	assert.Contains(t, err.Error(), "int")
}
