package alma

// CodeDesc is the Alma code/description pair. In JSON it is
// {"value": "...", "desc": "..."}; the XML form carries the code as
// character data and the description as a desc attribute, which the codec
// normalizes to the same two fields.
type CodeDesc struct {
	Value string `json:"value"          yaml:"value"`
	Desc  string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// Bib is a bibliographic record. MMSID is required on every record the
// client returns; Record is the raw-payload escape hatch for MARC fields
// not modeled explicitly.
type Bib struct {
	MMSID                      string                 `json:"mms_id"                                   yaml:"mms_id"`
	Title                      string                 `json:"title,omitempty"                          yaml:"title,omitempty"`
	Author                     string                 `json:"author,omitempty"                         yaml:"author,omitempty"`
	ISBN                       string                 `json:"isbn,omitempty"                           yaml:"isbn,omitempty"`
	ISSN                       string                 `json:"issn,omitempty"                           yaml:"issn,omitempty"`
	NetworkNumbers             []string               `json:"network_number,omitempty"                 yaml:"network_number,omitempty"`
	PlaceOfPublication         string                 `json:"place_of_publication,omitempty"           yaml:"place_of_publication,omitempty"`
	Publisher                  string                 `json:"publisher_const,omitempty"                yaml:"publisher_const,omitempty"`
	DateOfPublication          string                 `json:"date_of_publication,omitempty"            yaml:"date_of_publication,omitempty"`
	RecordFormat               string                 `json:"record_format,omitempty"                  yaml:"record_format,omitempty"`
	Link                       string                 `json:"link,omitempty"                           yaml:"link,omitempty"`
	SuppressFromPublishing     bool                   `json:"suppress_from_publishing,omitempty"       yaml:"suppress_from_publishing,omitempty"`
	SuppressFromExternalSearch bool                   `json:"suppress_from_external_search,omitempty"  yaml:"suppress_from_external_search,omitempty"`
	CatalogingLevel            *CodeDesc              `json:"cataloging_level,omitempty"               yaml:"cataloging_level,omitempty"`
	Record                     map[string]interface{} `json:"record,omitempty"                         yaml:"record,omitempty"`
	CreationDate               string                 `json:"creation_date,omitempty"                  yaml:"creation_date,omitempty"`
	CreatedBy                  string                 `json:"created_by,omitempty"                     yaml:"created_by,omitempty"`
	LastModifiedDate           string                 `json:"last_modified_date,omitempty"             yaml:"last_modified_date,omitempty"`
	LastModifiedBy             string                 `json:"last_modified_by,omitempty"               yaml:"last_modified_by,omitempty"`
	HoldingsLink               string                 `json:"holdings,omitempty"                       yaml:"holdings,omitempty"`
}

// BibLink is the abbreviated Bib reference embedded in holding and item
// records. It is a back-reference, not ownership.
type BibLink struct {
	MMSID  string `json:"mms_id"           yaml:"mms_id"`
	Title  string `json:"title,omitempty"  yaml:"title,omitempty"`
	Author string `json:"author,omitempty" yaml:"author,omitempty"`
	Link   string `json:"link,omitempty"   yaml:"link,omitempty"`
}

// Holding is a holding record nested under a Bib. Record holds the raw
// MARC holding data the vendor returns under the "anies" key.
type Holding struct {
	HoldingID              string                 `json:"holding_id"                         yaml:"holding_id"`
	Link                   string                 `json:"link,omitempty"                     yaml:"link,omitempty"`
	Library                *CodeDesc              `json:"library,omitempty"                  yaml:"library,omitempty"`
	Location               *CodeDesc              `json:"location,omitempty"                 yaml:"location,omitempty"`
	CallNumberType         *CodeDesc              `json:"call_number_type,omitempty"         yaml:"call_number_type,omitempty"`
	CallNumber             string                 `json:"call_number,omitempty"              yaml:"call_number,omitempty"`
	CopyID                 string                 `json:"copy_id,omitempty"                  yaml:"copy_id,omitempty"`
	AccessionNumber        string                 `json:"accession_number,omitempty"         yaml:"accession_number,omitempty"`
	SuppressFromPublishing bool                   `json:"suppress_from_publishing,omitempty" yaml:"suppress_from_publishing,omitempty"`
	Record                 map[string]interface{} `json:"anies,omitempty"                    yaml:"anies,omitempty"`
	BibData                *BibLink               `json:"bib_data,omitempty"                 yaml:"bib_data,omitempty"`
	CreatedBy              string                 `json:"created_by,omitempty"               yaml:"created_by,omitempty"`
	CreatedDate            string                 `json:"created_date,omitempty"             yaml:"created_date,omitempty"`
	LastModifiedBy         string                 `json:"last_modified_by,omitempty"         yaml:"last_modified_by,omitempty"`
	LastModifiedDate       string                 `json:"last_modified_date,omitempty"       yaml:"last_modified_date,omitempty"`
}

// HoldingLink is the abbreviated holding reference embedded in item
// records.
type HoldingLink struct {
	HoldingID      string    `json:"holding_id"                 yaml:"holding_id"`
	Link           string    `json:"link,omitempty"             yaml:"link,omitempty"`
	CallNumber     string    `json:"call_number,omitempty"      yaml:"call_number,omitempty"`
	Library        *CodeDesc `json:"library,omitempty"          yaml:"library,omitempty"`
	Location       *CodeDesc `json:"location,omitempty"         yaml:"location,omitempty"`
	InTempLocation bool      `json:"in_temp_location,omitempty" yaml:"in_temp_location,omitempty"`
}

// ItemData is the item-level portion of an Item, mirroring the vendor's
// item_data sub-structure.
type ItemData struct {
	PID                  string    `json:"pid,omitempty"                    yaml:"pid,omitempty"`
	Barcode              string    `json:"barcode,omitempty"                yaml:"barcode,omitempty"`
	BaseStatus           *CodeDesc `json:"base_status,omitempty"            yaml:"base_status,omitempty"`
	PhysicalMaterialType *CodeDesc `json:"physical_material_type,omitempty" yaml:"physical_material_type,omitempty"`
	Policy               *CodeDesc `json:"policy,omitempty"                 yaml:"policy,omitempty"`
	Library              *CodeDesc `json:"library,omitempty"                yaml:"library,omitempty"`
	Location             *CodeDesc `json:"location,omitempty"               yaml:"location,omitempty"`
	Description          string    `json:"description,omitempty"            yaml:"description,omitempty"`
	Pieces               string    `json:"pieces,omitempty"                 yaml:"pieces,omitempty"`
	Pages                string    `json:"pages,omitempty"                  yaml:"pages,omitempty"`
	PublicNote           string    `json:"public_note,omitempty"            yaml:"public_note,omitempty"`
	FulfillmentNote      string    `json:"fulfillment_note,omitempty"       yaml:"fulfillment_note,omitempty"`
	InternalNote1        string    `json:"internal_note_1,omitempty"        yaml:"internal_note_1,omitempty"`
	Requested            bool      `json:"requested,omitempty"              yaml:"requested,omitempty"`
	CreationDate         string    `json:"creation_date,omitempty"          yaml:"creation_date,omitempty"`
	ModificationDate     string    `json:"modification_date,omitempty"      yaml:"modification_date,omitempty"`
}

// Item is a physical item record nested under a holding.
type Item struct {
	ItemData    ItemData     `json:"item_data"              yaml:"item_data"`
	HoldingData *HoldingLink `json:"holding_data,omitempty" yaml:"holding_data,omitempty"`
	BibData     *BibLink     `json:"bib_data,omitempty"     yaml:"bib_data,omitempty"`
	Link        string       `json:"link,omitempty"         yaml:"link,omitempty"`
}

// Row is one Analytics result row. Keys are column headings when the
// vendor supplies them, or positional ColumnN names otherwise; the schema
// varies per report, so values stay loosely typed.
type Row map[string]string

// AnalyticsColumn describes one column of an Analytics report, extracted
// from the saw-sql schema section when present.
type AnalyticsColumn struct {
	Name     string `json:"name"                yaml:"name"`
	DataType string `json:"data_type,omitempty" yaml:"data_type,omitempty"`
}

// AnalyticsReportResults is the (possibly partial) result of a report run.
// IsFinished is false when the vendor has more rows to produce; the
// resumption token fetches the next chunk.
type AnalyticsReportResults struct {
	QueryPath       string            `json:"query_path,omitempty"       yaml:"query_path,omitempty"`
	JobID           string            `json:"job_id,omitempty"           yaml:"job_id,omitempty"`
	IsFinished      bool              `json:"is_finished"                yaml:"is_finished"`
	ResumptionToken string            `json:"resumption_token,omitempty" yaml:"resumption_token,omitempty"`
	Columns         []AnalyticsColumn `json:"columns,omitempty"          yaml:"columns,omitempty"`
	Rows            []Row             `json:"rows"                       yaml:"rows"`
}

// AnalyticsPath is one entry of the Analytics catalog tree.
type AnalyticsPath struct {
	Path string `json:"path"           yaml:"path"`
	Type string `json:"type,omitempty" yaml:"type,omitempty"`
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}
