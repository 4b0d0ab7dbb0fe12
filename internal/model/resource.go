package model

import "time"

type ResourceType string

const (
	ResourceLink    ResourceType = "link"
	ResourceContent ResourceType = "content"
	// ResourceFile is recognised but never stored; uploads are not accepted.
	ResourceFile ResourceType = "file"
)

func (t ResourceType) Valid() bool {
	switch t {
	case ResourceLink, ResourceContent, ResourceFile:
		return true
	}
	return false
}

// Resource is an entry in the shared learning library: either a link to an
// external page or a short piece of inline content.
type Resource struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Type        ResourceType `json:"type"`
	URL         string       `json:"url,omitempty"`
	Content     string       `json:"content,omitempty"`
	Platform    string       `json:"platform"`
	AddedBy     string       `json:"addedBy"`
	AddedByName string       `json:"addedByName"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"updatedAt"`
}
