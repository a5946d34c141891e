package codec

import (
	"encoding/json"
	"encoding/xml"

	"github.com/biblio-io/alma-client/pkg/alma"
)

type xmlHoldingLink struct {
	Link           string      `xml:"link,attr"`
	HoldingID      string      `xml:"holding_id"`
	CallNumber     string      `xml:"call_number"`
	Library        xmlCodeDesc `xml:"library"`
	Location       xmlCodeDesc `xml:"location"`
	InTempLocation string      `xml:"in_temp_location"`
}

func (x xmlHoldingLink) toHoldingLink() *alma.HoldingLink {
	if x.HoldingID == "" && x.Link == "" {
		return nil
	}

	return &alma.HoldingLink{
		HoldingID:      x.HoldingID,
		Link:           x.Link,
		CallNumber:     x.CallNumber,
		Library:        x.Library.toCodeDesc(),
		Location:       x.Location.toCodeDesc(),
		InTempLocation: parseBool(x.InTempLocation),
	}
}

type xmlItemData struct {
	PID                  string      `xml:"pid"`
	Barcode              string      `xml:"barcode"`
	BaseStatus           xmlCodeDesc `xml:"base_status"`
	PhysicalMaterialType xmlCodeDesc `xml:"physical_material_type"`
	Policy               xmlCodeDesc `xml:"policy"`
	Library              xmlCodeDesc `xml:"library"`
	Location             xmlCodeDesc `xml:"location"`
	Description          string      `xml:"description"`
	Pieces               string      `xml:"pieces"`
	Pages                string      `xml:"pages"`
	PublicNote           string      `xml:"public_note"`
	FulfillmentNote      string      `xml:"fulfillment_note"`
	InternalNote1        string      `xml:"internal_note_1"`
	Requested            string      `xml:"requested"`
	CreationDate         string      `xml:"creation_date"`
	ModificationDate     string      `xml:"modification_date"`
}

type xmlItem struct {
	XMLName     xml.Name       `xml:"item"`
	Link        string         `xml:"link,attr"`
	ItemData    xmlItemData    `xml:"item_data"`
	HoldingData xmlHoldingLink `xml:"holding_data"`
	BibData     xmlBibLink     `xml:"bib_data"`
}

func (x xmlItem) toItem() *alma.Item {
	return &alma.Item{
		ItemData: alma.ItemData{
			PID:                  x.ItemData.PID,
			Barcode:              x.ItemData.Barcode,
			BaseStatus:           x.ItemData.BaseStatus.toCodeDesc(),
			PhysicalMaterialType: x.ItemData.PhysicalMaterialType.toCodeDesc(),
			Policy:               x.ItemData.Policy.toCodeDesc(),
			Library:              x.ItemData.Library.toCodeDesc(),
			Location:             x.ItemData.Location.toCodeDesc(),
			Description:          x.ItemData.Description,
			Pieces:               x.ItemData.Pieces,
			Pages:                x.ItemData.Pages,
			PublicNote:           x.ItemData.PublicNote,
			FulfillmentNote:      x.ItemData.FulfillmentNote,
			InternalNote1:        x.ItemData.InternalNote1,
			Requested:            parseBool(x.ItemData.Requested),
			CreationDate:         x.ItemData.CreationDate,
			ModificationDate:     x.ItemData.ModificationDate,
		},
		HoldingData: x.HoldingData.toHoldingLink(),
		BibData:     x.BibData.toBibLink(),
		Link:        x.Link,
	}
}

// DecodeItem parses a single item record from either wire format.
func DecodeItem(body []byte, contentType, url string) (*alma.Item, error) {
	var item *alma.Item

	if IsXML(contentType) {
		var wire xmlItem
		if err := xml.Unmarshal(body, &wire); err != nil {
			return nil, decodeError("item", url, err)
		}

		item = wire.toItem()
	} else {
		item = &alma.Item{}
		if err := json.Unmarshal(body, item); err != nil {
			return nil, decodeError("item", url, err)
		}
	}

	if item.ItemData.PID == "" {
		return nil, validationError("item", url, "missing required item_data.pid")
	}

	return item, nil
}

// itemListEnvelope is the JSON list envelope for items.
type itemListEnvelope struct {
	Item             json.RawMessage `json:"item"`
	TotalRecordCount int             `json:"total_record_count"`
}

// DecodeItemList parses one page of an items listing, returning the
// page's records and the vendor-reported total record count.
func DecodeItemList(body []byte, url string) ([]alma.Item, int, error) {
	var envelope itemListEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, 0, decodeError("item list", url, err)
	}

	raws, err := rawToList(envelope.Item)
	if err != nil {
		return nil, 0, decodeError("item list", url, err)
	}

	items := make([]alma.Item, 0, len(raws))

	for _, raw := range raws {
		item, err := DecodeItem(raw, "", url)
		if err != nil {
			return nil, 0, err
		}

		items = append(items, *item)
	}

	return items, envelope.TotalRecordCount, nil
}
