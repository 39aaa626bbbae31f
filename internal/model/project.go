package model

import "time"

// ProjectStatus represents where a project sits in its lifecycle.
type ProjectStatus string

const (
	ProjectQuote      ProjectStatus = "orcamento"
	ProjectInProgress ProjectStatus = "em_andamento"
	ProjectDone       ProjectStatus = "concluido"
	ProjectCancelled  ProjectStatus = "cancelado"
)

// Valid reports whether s is one of the known project statuses.
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectQuote, ProjectInProgress, ProjectDone, ProjectCancelled:
		return true
	}
	return false
}

// Project is a row in projects.csv.
type Project struct {
	ID        string
	Name      string
	Status    ProjectStatus
	ClientID  string
	CreatedAt time.Time
	DueDate   time.Time
}
