package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"trustrank/internal/core"
)

// The engine speaks the same CSV dialect as the crawler's files: an
// i,j,v edge list and i,v vectors, user ids as plain integers.

func writeEdges(w io.Writer, edges []core.Edge) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"i", "j", "v"}); err != nil {
		return err
	}
	for _, e := range edges {
		record := []string{
			strconv.FormatInt(e.From, 10),
			strconv.FormatInt(e.To, 10),
			formatValue(e.Weight),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func writeSeed(w io.Writer, seed core.SeedVector) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"i", "v"}); err != nil {
		return err
	}
	for _, s := range seed {
		if err := cw.Write([]string{strconv.FormatInt(s.UserID, 10), formatValue(s.Weight)}); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// parseScores reads the engine's i,v output. Anything structurally off
// means the engine misbehaved, which the caller reports as an
// EngineFailure for the channel.
func parseScores(r io.Reader) ([]core.RawScore, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading score header: %w", err)
	}
	if header[0] != "i" || header[1] != "v" {
		return nil, fmt.Errorf("%w: unexpected score header %v", core.ErrMalformedRecord, header)
	}

	var scores []core.RawScore
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading score row: %w", err)
		}

		userID, err := strconv.ParseInt(record[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: score user id %q", core.ErrMalformedRecord, record[0])
		}
		value, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: score value %q", core.ErrMalformedRecord, record[1])
		}
		if value < 0 {
			return nil, fmt.Errorf("%w: negative score %v for user %d", core.ErrMalformedRecord, value, userID)
		}

		scores = append(scores, core.RawScore{UserID: userID, Value: value})
	}

	return scores, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
