package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/inkboard/internal/id"
	"github.com/cleared-dev/inkboard/internal/model"
)

// ProjectHeader is the CSV header for projects.csv.
const ProjectHeader = "id,name,status,client_id,created_at,due_date"

const (
	projNumFields  = 6
	projColID      = 0
	projColName    = 1
	projColStatus  = 2
	projColClient  = 3
	projColCreated = 4
	projColDue     = 5
)

var projectCodec = codec[model.Project]{
	entity:    "project",
	header:    ProjectHeader,
	unmarshal: UnmarshalProject,
	marshal:   MarshalProject,
}

// ReadProjects reads all projects from a projects.csv reader.
func ReadProjects(r io.Reader, loc *time.Location) ([]model.Project, []Warning, error) {
	return projectCodec.read(r, loc)
}

// WriteProjects writes projects (including header).
func WriteProjects(w io.Writer, projects []model.Project) error {
	return projectCodec.write(w, projects)
}

// MarshalProject converts a Project to a CSV row.
func MarshalProject(p model.Project) []string {
	row := make([]string, projNumFields)
	row[projColID] = p.ID
	row[projColName] = p.Name
	row[projColStatus] = string(p.Status)
	row[projColClient] = p.ClientID
	row[projColCreated] = formatDate(p.CreatedAt)
	row[projColDue] = formatDate(p.DueDate)
	return row
}

// UnmarshalProject converts a CSV row to a Project.
func UnmarshalProject(record []string, loc *time.Location) (model.Project, []int, error) {
	if len(record) != projNumFields {
		return model.Project{}, nil, fmt.Errorf("expected %d fields, got %d", projNumFields, len(record))
	}

	fc := newFieldCheck(loc)
	proj := model.Project{
		ID:        id.OrNew(record[projColID]),
		Name:      record[projColName],
		Status:    model.ProjectStatus(record[projColStatus]),
		ClientID:  record[projColClient],
		CreatedAt: fc.date(record, projColCreated),
		DueDate:   fc.date(record, projColDue),
	}
	return proj, fc.bad, nil
}
