package codec

import (
	"encoding/json"
	"encoding/xml"

	"github.com/biblio-io/alma-client/pkg/alma"
)

// bibJSON tolerates both spellings of the raw-record key: "record" (the
// documented form) and "anies" (what some Alma deployments emit).
type bibJSON struct {
	alma.Bib

	Anies map[string]interface{} `json:"anies"`
}

// xmlCodeDesc is the XML form of a code/description pair: character data
// plus a desc attribute.
type xmlCodeDesc struct {
	Text string `xml:",chardata"`
	Desc string `xml:"desc,attr"`
}

func (x xmlCodeDesc) toCodeDesc() *alma.CodeDesc {
	if x.Text == "" && x.Desc == "" {
		return nil
	}

	return &alma.CodeDesc{Value: x.Text, Desc: x.Desc}
}

type xmlBib struct {
	XMLName                    xml.Name    `xml:"bib"`
	Link                       string      `xml:"link,attr"`
	MMSID                      string      `xml:"mms_id"`
	Title                      string      `xml:"title"`
	Author                     string      `xml:"author"`
	ISBN                       string      `xml:"isbn"`
	ISSN                       string      `xml:"issn"`
	NetworkNumbers             []string    `xml:"network_numbers>network_number"`
	PlaceOfPublication         string      `xml:"place_of_publication"`
	Publisher                  string      `xml:"publisher_const"`
	DateOfPublication          string      `xml:"date_of_publication"`
	RecordFormat               string      `xml:"record_format"`
	SuppressFromPublishing     string      `xml:"suppress_from_publishing"`
	SuppressFromExternalSearch string      `xml:"suppress_from_external_search"`
	CatalogingLevel            xmlCodeDesc `xml:"cataloging_level"`
	CreationDate               string      `xml:"creation_date"`
	CreatedBy                  string      `xml:"created_by"`
	LastModifiedDate           string      `xml:"last_modified_date"`
	LastModifiedBy             string      `xml:"last_modified_by"`
	HoldingsLink               string      `xml:"holdings"`
}

// DecodeBib parses a bibliographic record from either wire format. The
// url is carried into any error for caller context.
func DecodeBib(body []byte, contentType, url string) (*alma.Bib, error) {
	var bib *alma.Bib

	if IsXML(contentType) {
		var wire xmlBib
		if err := xml.Unmarshal(body, &wire); err != nil {
			return nil, decodeError("bib", url, err)
		}

		bib = &alma.Bib{
			MMSID:                      wire.MMSID,
			Title:                      wire.Title,
			Author:                     wire.Author,
			ISBN:                       wire.ISBN,
			ISSN:                       wire.ISSN,
			NetworkNumbers:             wire.NetworkNumbers,
			PlaceOfPublication:         wire.PlaceOfPublication,
			Publisher:                  wire.Publisher,
			DateOfPublication:          wire.DateOfPublication,
			RecordFormat:               wire.RecordFormat,
			Link:                       wire.Link,
			SuppressFromPublishing:     parseBool(wire.SuppressFromPublishing),
			SuppressFromExternalSearch: parseBool(wire.SuppressFromExternalSearch),
			CatalogingLevel:            wire.CatalogingLevel.toCodeDesc(),
			CreationDate:               wire.CreationDate,
			CreatedBy:                  wire.CreatedBy,
			LastModifiedDate:           wire.LastModifiedDate,
			LastModifiedBy:             wire.LastModifiedBy,
			HoldingsLink:               wire.HoldingsLink,
		}
	} else {
		var wire bibJSON
		if err := json.Unmarshal(body, &wire); err != nil {
			return nil, decodeError("bib", url, err)
		}

		bib = &wire.Bib
		if bib.Record == nil && wire.Anies != nil {
			bib.Record = wire.Anies
		}
	}

	if bib.MMSID == "" {
		return nil, validationError("bib", url, "missing required mms_id")
	}

	return bib, nil
}
