package dataset

import (
	"fmt"
	"io"
	"time"

	"github.com/cleared-dev/inkboard/internal/id"
	"github.com/cleared-dev/inkboard/internal/model"
)

// ClientHeader is the CSV header for clients.csv.
const ClientHeader = "id,name,email,phone,created_at"

const (
	clientNumFields  = 5
	clientColID      = 0
	clientColName    = 1
	clientColEmail   = 2
	clientColPhone   = 3
	clientColCreated = 4
)

var clientCodec = codec[model.Client]{
	entity:    "client",
	header:    ClientHeader,
	unmarshal: UnmarshalClient,
	marshal:   MarshalClient,
}

// ReadClients reads all clients from a clients.csv reader. Date-only values
// are interpreted in loc.
func ReadClients(r io.Reader, loc *time.Location) ([]model.Client, []Warning, error) {
	return clientCodec.read(r, loc)
}

// WriteClients writes clients to a clients.csv writer (including header).
func WriteClients(w io.Writer, clients []model.Client) error {
	return clientCodec.write(w, clients)
}

// MarshalClient converts a Client to a CSV row.
func MarshalClient(c model.Client) []string {
	row := make([]string, clientNumFields)
	row[clientColID] = c.ID
	row[clientColName] = c.Name
	row[clientColEmail] = c.Email
	row[clientColPhone] = c.Phone
	row[clientColCreated] = formatDate(c.CreatedAt)
	return row
}

// UnmarshalClient converts a CSV row to a Client. The returned column
// indexes held dates that could not be parsed.
func UnmarshalClient(record []string, loc *time.Location) (model.Client, []int, error) {
	if len(record) != clientNumFields {
		return model.Client{}, nil, fmt.Errorf("expected %d fields, got %d", clientNumFields, len(record))
	}

	fc := newFieldCheck(loc)
	client := model.Client{
		ID:        id.OrNew(record[clientColID]),
		Name:      record[clientColName],
		Email:     record[clientColEmail],
		Phone:     record[clientColPhone],
		CreatedAt: fc.date(record, clientColCreated),
	}
	return client, fc.bad, nil
}
