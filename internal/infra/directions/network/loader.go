package network

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Node is a junction of the walking network
type Node struct {
	ID  int64 // Slice index
	Lat float64
	Lng float64
}

// Way is an undirected footway between two nodes
type Way struct {
	From   int64
	To     int64
	Meters float64
}

// Data holds a loaded walking network
type Data struct {
	Nodes    []Node
	Ways     []Way
	Metadata *Metadata
}

// Metadata describes where a network extract came from. It is optional.
type Metadata struct {
	Region      string    `json:"region"`
	Profile     string    `json:"profile"`
	GeneratedAt time.Time `json:"generated_at"`
	NodesCount  int       `json:"nodes_count"`
	WaysCount   int       `json:"ways_count"`
}

// Load reads nodes.csv, ways.csv and the optional metadata.json from dataDir.
//
//	nodes.csv: id,lat,lng
//	ways.csv:  from,to,meters
func Load(dataDir string) (*Data, error) {
	nodes, err := loadNodes(filepath.Join(dataDir, "nodes.csv"))
	if err != nil {
		return nil, err
	}

	ways, err := loadWays(filepath.Join(dataDir, "ways.csv"), len(nodes))
	if err != nil {
		return nil, err
	}

	metadata, err := loadMetadata(filepath.Join(dataDir, "metadata.json"))
	if err != nil {
		return nil, err
	}

	return &Data{Nodes: nodes, Ways: ways, Metadata: metadata}, nil
}

func loadNodes(path string) ([]Node, error) {
	var nodes []Node
	err := readCSV(path, 3, func(record []string, line int) error {
		id, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: id", filepath.Base(path), line)
		}
		if id != int64(len(nodes)) {
			return errors.Errorf("%s:%d: node id %d out of sequence", filepath.Base(path), line, id)
		}
		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: lat", filepath.Base(path), line)
		}
		lng, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: lng", filepath.Base(path), line)
		}

		nodes = append(nodes, Node{ID: id, Lat: lat, Lng: lng})

		return nil
	})

	return nodes, err
}

func loadWays(path string, nodeCount int) ([]Way, error) {
	var ways []Way
	err := readCSV(path, 3, func(record []string, line int) error {
		from, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: from", filepath.Base(path), line)
		}
		to, err := strconv.ParseInt(record[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: to", filepath.Base(path), line)
		}
		meters, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return errors.Wrapf(err, "%s:%d: meters", filepath.Base(path), line)
		}
		if from < 0 || to < 0 || from >= int64(nodeCount) || to >= int64(nodeCount) {
			return errors.Errorf("%s:%d: way %d-%d references unknown node", filepath.Base(path), line, from, to)
		}
		if meters < 0 {
			return errors.Errorf("%s:%d: negative length %f", filepath.Base(path), line, meters)
		}

		ways = append(ways, Way{From: from, To: to, Meters: meters})

		return nil
	})

	return ways, err
}

// readCSV skips the header row and hands every record with at least columns fields to parse
func readCSV(path string, columns int, parse func(record []string, line int) error) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.WithStack(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	if _, err := reader.Read(); err != nil {
		return errors.Wrapf(err, "failed to read header of %s", filepath.Base(path))
	}

	line := 1
	for {
		record, readErr := reader.Read()
		if errors.Is(readErr, io.EOF) {
			return nil
		}
		if readErr != nil {
			return errors.WithStack(readErr)
		}
		line++

		if len(record) < columns {
			return errors.Errorf("invalid %s format at line %d: expected %d columns, got %d",
				filepath.Base(path), line, columns, len(record))
		}

		if err := parse(record, line); err != nil {
			return err
		}
	}
}

func loadMetadata(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, errors.Wrap(err, "failed to read metadata.json")
	}

	var metadata Metadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, errors.Wrap(err, "failed to parse metadata.json")
	}

	return &metadata, nil
}
