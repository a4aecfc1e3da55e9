package hb

type Whiteboard struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	IsTrashed   bool   `json:"isTrashed"`
	CreatedTime string `json:"createdTime"`
	SpaceID     string `json:"spaceId"`
}

type WhiteboardInstance struct {
	ID            string `json:"id"`
	WhiteboardID  string `json:"whiteboardId"`
	ContainerID   string `json:"containerId"`
	ContainerType string `json:"containerType"`
}

type Card struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	CreatedTime string `json:"createdTime"`
	SpaceID     string `json:"spaceId"`
}

type CardInstance struct {
	ID           string `json:"id"`
	CardID       string `json:"cardId"`
	WhiteboardID string `json:"whiteboardId"`
}

type Journal struct {
	ID          string `json:"id"`
	Date        string `json:"date"`
	CreatedTime string `json:"createdTime"`
}

type Section struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	WhiteboardID string `json:"whiteboardId"`
}

type SectionObjectRelation struct {
	ID         string `json:"id"`
	SectionID  string `json:"sectionId"`
	ObjectID   string `json:"objectId"`
	ObjectType string `json:"objectType"`
}

type MediaElement struct {
	ID           string `json:"id"`
	WhiteboardID string `json:"whiteboardId"`
	FileID       string `json:"fileId"`
}

type PdfCard struct {
	ID     string `json:"id"`
	FileID string `json:"fileId"`
}

type PdfCardInstance struct {
	ID           string `json:"id"`
	PdfCardID    string `json:"pdfCardId"`
	WhiteboardID string `json:"whiteboardId"`
}

type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
	Size int64  `json:"size"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type TagGroup struct {
	ID   string   `json:"id"`
	Name string   `json:"name"`
	Tags []string `json:"tags"`
}

type QueryConfig struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type Collection struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	QueryConfig QueryConfig `json:"queryConfig"`
}

type CollectionView struct {
	ID           string        `json:"id"`
	CollectionID string        `json:"collectionId"`
	Name         string        `json:"name"`
	ViewType     string        `json:"viewType"`
	FilterConfig *FilterConfig `json:"filterConfig"`
}

type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type PropertyValue struct {
	Value any `json:"value"`
}

type ObjectPropertyRelation struct {
	ID         string        `json:"id"`
	ObjectID   string        `json:"objectId"`
	PropertyID string        `json:"propertyId"`
	Value      PropertyValue `json:"value"`
}

type FilterRule struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

type FilterConfig struct {
	Combinator string       `json:"combinator"`
	Rules      []FilterRule `json:"rules"`
}

// Data is one decoded All-Data.json snapshot, read-only for the
// duration of an export session.
type Data struct {
	Version                 string                   `json:"VERSION"`
	AccountID               string                   `json:"ACCOUNT_ID"`
	WhiteboardList          []Whiteboard             `json:"whiteBoardList"`
	WhiteboardInstances     []WhiteboardInstance     `json:"whiteboardInstances"`
	CardList                []Card                   `json:"cardList"`
	CardInstances           []CardInstance           `json:"cardInstances"`
	JournalList             []Journal                `json:"journalList"`
	Sections                []Section                `json:"sections"`
	SectionObjectRelations  []SectionObjectRelation  `json:"sectionObjectRelations"`
	MediaElements           []MediaElement           `json:"mediaElements"`
	PdfCards                []PdfCard                `json:"pdfCards"`
	PdfCardInstances        []PdfCardInstance        `json:"pdfCardInstances"`
	Files                   []File                   `json:"files"`
	TagList                 []Tag                    `json:"tagList"`
	TagGroups               []TagGroup               `json:"tagGroups"`
	Collections             []Collection             `json:"collections"`
	CollectionViews         []CollectionView         `json:"collectionViews"`
	Properties              []Property               `json:"properties"`
	ObjectPropertyRelations []ObjectPropertyRelation `json:"objectPropertyRelations"`
}
