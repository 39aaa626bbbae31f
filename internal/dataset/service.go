package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cleared-dev/inkboard/internal/log"
	"github.com/cleared-dev/inkboard/internal/model"
)

// DataDir is the subdirectory holding the record files.
const DataDir = "data"

// File names under DataDir.
const (
	ClientsFile      = "clients.csv"
	TransactionsFile = "transactions.csv"
	ProjectsFile     = "projects.csv"
	AppointmentsFile = "appointments.csv"
)

// Dataset is everything the dashboard views read.
type Dataset struct {
	Clients      []model.Client
	Transactions []model.Transaction
	Projects     []model.Project
	Appointments []model.Appointment
	Warnings     []Warning
}

// Service reads and writes the record files of one project directory.
type Service struct {
	repoRoot string
	loc      *time.Location
	logger   *log.Logger
}

// NewService creates a dataset Service. Date-only values are read in loc;
// a nil loc means UTC and a nil logger discards warnings.
func NewService(repoRoot string, loc *time.Location, logger *log.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = log.Discard()
	}
	return &Service{repoRoot: repoRoot, loc: loc, logger: logger.WithComponent(log.ComponentDataset)}
}

// Load reads all four record files. Missing files load as empty collections.
func (s *Service) Load() (*Dataset, error) {
	ds := &Dataset{}
	var err error
	var w []Warning

	if ds.Clients, w, err = loadFile(s, ClientsFile, ReadClients); err != nil {
		return nil, err
	}
	ds.Warnings = append(ds.Warnings, w...)

	if ds.Transactions, w, err = loadFile(s, TransactionsFile, ReadTransactions); err != nil {
		return nil, err
	}
	ds.Warnings = append(ds.Warnings, w...)

	if ds.Projects, w, err = loadFile(s, ProjectsFile, ReadProjects); err != nil {
		return nil, err
	}
	ds.Warnings = append(ds.Warnings, w...)

	if ds.Appointments, w, err = loadFile(s, AppointmentsFile, ReadAppointments); err != nil {
		return nil, err
	}
	ds.Warnings = append(ds.Warnings, w...)

	for _, warn := range ds.Warnings {
		s.logger.Warn("unparseable date, record excluded from monthly charts",
			log.FieldEntity, warn.Entity,
			log.FieldRow, warn.Row,
			log.FieldColumn, warn.Column,
			log.FieldValue, warn.Value,
		)
	}
	s.logger.Debug("dataset loaded",
		log.FieldRepo, s.repoRoot,
		"clients", len(ds.Clients),
		"transactions", len(ds.Transactions),
		"projects", len(ds.Projects),
		"appointments", len(ds.Appointments),
	)
	return ds, nil
}

func loadFile[T any](s *Service, name string, read func(io.Reader, *time.Location) ([]T, []Warning, error)) ([]T, []Warning, error) {
	path := s.Path(name)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	items, warnings, err := read(f, s.loc)
	if err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return items, warnings, nil
}

// Init creates the data directory and writes a header-only file for each
// record type that does not exist yet.
func (s *Service) Init() error {
	dir := filepath.Join(s.repoRoot, DataDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	headers := map[string]string{
		ClientsFile:      ClientHeader,
		TransactionsFile: TransactionHeader,
		ProjectsFile:     ProjectHeader,
		AppointmentsFile: AppointmentHeader,
	}
	for name, header := range headers {
		path := s.Path(name)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := os.WriteFile(path, []byte(header+"\n"), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// AppendTransactions appends to transactions.csv, creating the file and
// header if needed.
func (s *Service) AppendTransactions(txns []model.Transaction) error {
	path := s.Path(TransactionsFile)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening transactions: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, TransactionHeader); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, txns); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	return nil
}

// Path returns the location of a record file.
func (s *Service) Path(name string) string {
	return filepath.Join(s.repoRoot, DataDir, name)
}
