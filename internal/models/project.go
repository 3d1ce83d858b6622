package models

// Project represents a user project
type Project struct {
	ID          string    `json:"_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Owner       string    `json:"owner,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// ProjectInput is the body sent when creating or updating a project
type ProjectInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// FindProject returns the project with the given ID
func FindProject(projects []Project, id string) (*Project, bool) {
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], true
		}
	}
	return nil, false
}
