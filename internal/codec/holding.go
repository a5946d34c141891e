package codec

import (
	"encoding/json"
	"encoding/xml"

	"github.com/biblio-io/alma-client/pkg/alma"
)

type xmlBibLink struct {
	Link   string `xml:"link,attr"`
	MMSID  string `xml:"mms_id"`
	Title  string `xml:"title"`
	Author string `xml:"author"`
}

func (x xmlBibLink) toBibLink() *alma.BibLink {
	if x.MMSID == "" && x.Title == "" && x.Link == "" {
		return nil
	}

	return &alma.BibLink{MMSID: x.MMSID, Title: x.Title, Author: x.Author, Link: x.Link}
}

type xmlHolding struct {
	XMLName                xml.Name    `xml:"holding"`
	Link                   string      `xml:"link,attr"`
	HoldingID              string      `xml:"holding_id"`
	Library                xmlCodeDesc `xml:"library"`
	Location               xmlCodeDesc `xml:"location"`
	CallNumberType         xmlCodeDesc `xml:"call_number_type"`
	CallNumber             string      `xml:"call_number"`
	CopyID                 string      `xml:"copy_id"`
	AccessionNumber        string      `xml:"accession_number"`
	SuppressFromPublishing string      `xml:"suppress_from_publishing"`
	BibData                xmlBibLink  `xml:"bib_data"`
	CreatedBy              string      `xml:"created_by"`
	CreatedDate            string      `xml:"created_date"`
	LastModifiedBy         string      `xml:"last_modified_by"`
	LastModifiedDate       string      `xml:"last_modified_date"`
}

func (x xmlHolding) toHolding() *alma.Holding {
	return &alma.Holding{
		HoldingID:              x.HoldingID,
		Link:                   x.Link,
		Library:                x.Library.toCodeDesc(),
		Location:               x.Location.toCodeDesc(),
		CallNumberType:         x.CallNumberType.toCodeDesc(),
		CallNumber:             x.CallNumber,
		CopyID:                 x.CopyID,
		AccessionNumber:        x.AccessionNumber,
		SuppressFromPublishing: parseBool(x.SuppressFromPublishing),
		BibData:                x.BibData.toBibLink(),
		CreatedBy:              x.CreatedBy,
		CreatedDate:            x.CreatedDate,
		LastModifiedBy:         x.LastModifiedBy,
		LastModifiedDate:       x.LastModifiedDate,
	}
}

// DecodeHolding parses a single holding record from either wire format.
func DecodeHolding(body []byte, contentType, url string) (*alma.Holding, error) {
	var holding *alma.Holding

	if IsXML(contentType) {
		var wire xmlHolding
		if err := xml.Unmarshal(body, &wire); err != nil {
			return nil, decodeError("holding", url, err)
		}

		holding = wire.toHolding()
	} else {
		holding = &alma.Holding{}
		if err := json.Unmarshal(body, holding); err != nil {
			return nil, decodeError("holding", url, err)
		}
	}

	if holding.HoldingID == "" {
		return nil, validationError("holding", url, "missing required holding_id")
	}

	return holding, nil
}

// holdingListEnvelope is the JSON list envelope: a "holding" key holding
// either a list or a single object, plus the vendor-reported total.
type holdingListEnvelope struct {
	Holding          json.RawMessage `json:"holding"`
	TotalRecordCount int             `json:"total_record_count"`
}

// DecodeHoldingList parses one page of a holdings listing, returning the
// page's records and the vendor-reported total record count.
func DecodeHoldingList(body []byte, url string) ([]alma.Holding, int, error) {
	var envelope holdingListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, decodeError("holding list", url, err)
	}

	raws, err := rawToList(envelope.Holding)
	if err != nil {
		return nil, 0, decodeError("holding list", url, err)
	}

	holdings := make([]alma.Holding, 0, len(raws))

	for _, raw := range raws {
		holding, err := DecodeHolding(raw, "", url)
		if err != nil {
			return nil, 0, err
		}

		holdings = append(holdings, *holding)
	}

	return holdings, envelope.TotalRecordCount, nil
}
