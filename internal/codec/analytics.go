package codec

import (
	"encoding/json"
	"encoding/xml"

	"github.com/biblio-io/alma-client/pkg/alma"
)

// jsonQueryResult mirrors the Analytics QueryResult envelope as produced
// by the vendor's XML-to-JSON conversion: attribute keys carry an "@"
// prefix and single children may appear without a wrapping list.
type jsonQueryResult struct {
	QueryResult *struct {
		ResultXml *struct {
			Schema *struct {
				ComplexType *struct {
					Sequence *struct {
						Element json.RawMessage `json:"element"`
					} `json:"sequence"`
				} `json:"complexType"`
			} `json:"Schema"`
			Rowset *struct {
				Row json.RawMessage `json:"Row"`
			} `json:"rowset"`
		} `json:"ResultXml"`
		ResumptionToken string          `json:"ResumptionToken"`
		IsFinished      json.RawMessage `json:"IsFinished"`
		JobID           string          `json:"JobID"`
	} `json:"QueryResult"`
}

// DecodeReport parses an Analytics report chunk from either wire format.
func DecodeReport(body []byte, contentType, url string) (*alma.AnalyticsReportResults, error) {
	if IsXML(contentType) {
		return decodeReportXML(body, url)
	}

	return decodeReportJSON(body, url)
}

func decodeReportJSON(body []byte, url string) (*alma.AnalyticsReportResults, error) {
	var wire jsonQueryResult
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, decodeError("analytics report", url, err)
	}

	if wire.QueryResult == nil {
		return nil, validationError("analytics report", url, "missing QueryResult envelope")
	}

	if len(wire.QueryResult.IsFinished) == 0 {
		return nil, validationError("analytics report", url, "missing IsFinished flag")
	}

	finished, err := parseFlexibleBool(wire.QueryResult.IsFinished)
	if err != nil {
		return nil, validationError("analytics report", url, "malformed IsFinished flag")
	}

	result := &alma.AnalyticsReportResults{
		IsFinished:      finished,
		ResumptionToken: wire.QueryResult.ResumptionToken,
		JobID:           wire.QueryResult.JobID,
		Rows:            []alma.Row{},
	}

	if wire.QueryResult.ResultXml != nil {
		if rowset := wire.QueryResult.ResultXml.Rowset; rowset != nil {
			rows, err := decodeJSONRows(rowset.Row)
			if err != nil {
				return nil, decodeError("analytics report rows", url, err)
			}

			result.Rows = rows
		}

		if schema := wire.QueryResult.ResultXml.Schema; schema != nil &&
			schema.ComplexType != nil && schema.ComplexType.Sequence != nil {
			columns, err := decodeJSONColumns(schema.ComplexType.Sequence.Element)
			if err != nil {
				return nil, decodeError("analytics report schema", url, err)
			}

			result.Columns = columns
		}
	}

	return result, nil
}

// parseFlexibleBool accepts both the bare boolean and the quoted-string
// spellings the vendor uses for IsFinished.
func parseFlexibleBool(raw json.RawMessage) (bool, error) {
	var asBool bool
	if err := json.Unmarshal(raw, &asBool); err == nil {
		return asBool, nil
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err != nil {
		return false, err
	}

	return parseBool(asString), nil
}

func decodeJSONRows(raw json.RawMessage) ([]alma.Row, error) {
	raws, err := rawToList(raw)
	if err != nil {
		return nil, err
	}

	rows := make([]alma.Row, 0, len(raws))

	for _, entry := range raws {
		var fields map[string]interface{}
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, err
		}

		row := alma.Row{}

		for key, value := range fields {
			// Attribute keys like "@xmlns" are conversion noise.
			if len(key) > 0 && key[0] == '@' {
				continue
			}

			row[key] = stringify(value)
		}

		rows = append(rows, row)
	}

	return rows, nil
}

func decodeJSONColumns(raw json.RawMessage) ([]alma.AnalyticsColumn, error) {
	raws, err := rawToList(raw)
	if err != nil {
		return nil, err
	}

	columns := make([]alma.AnalyticsColumn, 0, len(raws))

	for _, entry := range raws {
		var fields map[string]interface{}
		if err := json.Unmarshal(entry, &fields); err != nil {
			return nil, err
		}

		column := alma.AnalyticsColumn{
			Name:     stringify(fields["@saw-sql:columnHeading"]),
			DataType: stringify(fields["@type"]),
		}

		if column.Name == "" {
			column.Name = stringify(fields["@name"])
		}

		if column.Name == "" {
			continue
		}

		columns = append(columns, column)
	}

	return columns, nil
}

type xmlAnyValue struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlReportRow struct {
	Values []xmlAnyValue `xml:",any"`
}

type xmlSchemaElement struct {
	Name     string `xml:"name,attr"`
	Heading  string `xml:"columnHeading,attr"`
	DataType string `xml:"type,attr"`
}

type xmlQueryResult struct {
	XMLName         xml.Name           `xml:"QueryResult"`
	Rows            []xmlReportRow     `xml:"ResultXml>rowset>Row"`
	SchemaElements  []xmlSchemaElement `xml:"ResultXml>rowset>schema>complexType>sequence>element"`
	ResumptionToken string             `xml:"ResumptionToken"`
	IsFinished      string             `xml:"IsFinished"`
	JobID           string             `xml:"JobID"`
}

func decodeReportXML(body []byte, url string) (*alma.AnalyticsReportResults, error) {
	var wire xmlQueryResult
	if err := xml.Unmarshal(body, &wire); err != nil {
		return nil, decodeError("analytics report", url, err)
	}

	if wire.IsFinished == "" {
		return nil, validationError("analytics report", url, "missing IsFinished flag")
	}

	result := &alma.AnalyticsReportResults{
		IsFinished:      parseBool(wire.IsFinished),
		ResumptionToken: wire.ResumptionToken,
		JobID:           wire.JobID,
		Rows:            make([]alma.Row, 0, len(wire.Rows)),
	}

	for _, wireRow := range wire.Rows {
		row := alma.Row{}
		for _, value := range wireRow.Values {
			row[value.XMLName.Local] = value.Value
		}

		result.Rows = append(result.Rows, row)
	}

	for _, element := range wire.SchemaElements {
		name := element.Heading
		if name == "" {
			name = element.Name
		}

		if name == "" {
			continue
		}

		result.Columns = append(result.Columns, alma.AnalyticsColumn{
			Name:     name,
			DataType: element.DataType,
		})
	}

	return result, nil
}

// jsonPathsEnvelope is the JSON form of /analytics/paths: entries are
// either bare path strings or objects with @-prefixed attributes.
type jsonPathsEnvelope struct {
	Path json.RawMessage `json:"path"`
}

type xmlPathsResult struct {
	XMLName xml.Name `xml:"AnalyticsPathsResult"`
	Paths   []struct {
		Path string `xml:"path,attr"`
		Type string `xml:"type,attr"`
		Name string `xml:"name,attr"`
	} `xml:"path"`
}

// DecodePaths parses the Analytics catalog listing from either wire
// format.
func DecodePaths(body []byte, contentType, url string) ([]alma.AnalyticsPath, error) {
	if IsXML(contentType) {
		var wire xmlPathsResult
		if err := xml.Unmarshal(body, &wire); err != nil {
			return nil, decodeError("analytics paths", url, err)
		}

		paths := make([]alma.AnalyticsPath, 0, len(wire.Paths))
		for _, entry := range wire.Paths {
			if entry.Path == "" {
				return nil, validationError("analytics paths", url, "missing required path")
			}

			paths = append(paths, alma.AnalyticsPath{Path: entry.Path, Type: entry.Type, Name: entry.Name})
		}

		return paths, nil
	}

	var envelope jsonPathsEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, decodeError("analytics paths", url, err)
	}

	raws, err := rawToList(envelope.Path)
	if err != nil {
		return nil, decodeError("analytics paths", url, err)
	}

	paths := make([]alma.AnalyticsPath, 0, len(raws))

	for _, raw := range raws {
		var asString string
		if err := json.Unmarshal(raw, &asString); err == nil {
			paths = append(paths, alma.AnalyticsPath{Path: asString})

			continue
		}

		var fields map[string]interface{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, decodeError("analytics paths", url, err)
		}

		path := alma.AnalyticsPath{
			Path: firstString(fields, "@path", "path"),
			Type: firstString(fields, "@type", "type"),
			Name: firstString(fields, "@name", "name"),
		}

		if path.Path == "" {
			return nil, validationError("analytics paths", url, "missing required path")
		}

		paths = append(paths, path)
	}

	return paths, nil
}

func firstString(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if value, ok := fields[key]; ok {
			if str := stringify(value); str != "" {
				return str
			}
		}
	}

	return ""
}
