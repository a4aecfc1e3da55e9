package hb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectTestData() *Data {
	return &Data{
		WhiteboardList: []Whiteboard{{ID: "wb", Name: "Board"}},
		CardList: []Card{
			{ID: "card-a", Title: "A"},
			{ID: "card-b", Title: "B"},
			{ID: "card-loose", Title: "Loose"},
			{ID: "card-elsewhere", Title: "Elsewhere"},
		},
		CardInstances: []CardInstance{
			{ID: "ins-a", CardID: "card-a", WhiteboardID: "wb"},
			{ID: "ins-b", CardID: "card-b", WhiteboardID: "wb"},
			{ID: "ins-loose", CardID: "card-loose", WhiteboardID: "wb"},
			{ID: "ins-elsewhere", CardID: "card-elsewhere", WhiteboardID: "wb-other"},
		},
		SectionObjectRelations: []SectionObjectRelation{
			{ID: "r1", SectionID: "sec-1", ObjectID: "ins-a", ObjectType: "cardInstance"},
			{ID: "r2", SectionID: "sec-2", ObjectID: "ins-b", ObjectType: "cardInstance"},
			{ID: "r3", SectionID: "sec-1", ObjectID: "media-1", ObjectType: "mediaElement"},
		},
		MediaElements: []MediaElement{
			{ID: "media-1", WhiteboardID: "wb", FileID: "file-img"},
			{ID: "media-nofile", WhiteboardID: "wb", FileID: "file-gone"},
		},
		PdfCards:         []PdfCard{{ID: "pdf-1", FileID: "file-pdf"}},
		PdfCardInstances: []PdfCardInstance{{ID: "pdf-ins-1", PdfCardID: "pdf-1", WhiteboardID: "wb"}},
		Files: []File{
			{ID: "file-img", Name: "diagram.png", Type: "image/png", Size: 17},
			{ID: "file-pdf", Name: "paper.pdf", Type: "application/pdf", Size: 42},
		},
	}
}

func wbSet(ids ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func cardIDs(cards []Card) []string {
	var out []string
	for _, card := range cards {
		out = append(out, card.ID)
	}
	return out
}

func TestCardsInWhiteboardsAll(t *testing.T) {
	got := CardsInWhiteboards(wbSet("wb"), selectTestData(), SectionScope{})
	assert.Equal(t, []string{"card-a", "card-b", "card-loose"}, cardIDs(got))
}

func TestCardsInWhiteboardsInclude(t *testing.T) {
	got := CardsInWhiteboards(wbSet("wb"), selectTestData(), SectionScope{Include: []string{"sec-1"}})
	assert.Equal(t, []string{"card-a"}, cardIDs(got))
}

func TestCardsInWhiteboardsExclude(t *testing.T) {
	got := CardsInWhiteboards(wbSet("wb"), selectTestData(), SectionScope{Exclude: []string{"sec-1"}})
	assert.Equal(t, []string{"card-b", "card-loose"}, cardIDs(got))
}

func TestUnsectionedCardComplementarity(t *testing.T) {
	// A card in no section is never part of an include selection and
	// always part of an exclude selection.
	data := selectTestData()
	included := cardIDs(CardsInWhiteboards(wbSet("wb"), data, SectionScope{Include: []string{"sec-1", "sec-2"}}))
	excluded := cardIDs(CardsInWhiteboards(wbSet("wb"), data, SectionScope{Exclude: []string{"sec-1", "sec-2"}}))

	assert.NotContains(t, included, "card-loose")
	assert.Contains(t, excluded, "card-loose")
}

func TestAssetsInWhiteboards(t *testing.T) {
	got := AssetsInWhiteboards(wbSet("wb"), selectTestData(), SectionScope{})

	require.Len(t, got, 2)
	require.NotNil(t, got[0].Media)
	assert.Equal(t, "diagram.png", got[0].File.Name)
	assert.Equal(t, "Board", got[0].Whiteboard.Name)
	require.NotNil(t, got[1].Pdf)
	assert.Equal(t, "paper.pdf", got[1].File.Name)
}

func TestAssetsInWhiteboardsSectionScope(t *testing.T) {
	got := AssetsInWhiteboards(wbSet("wb"), selectTestData(), SectionScope{Include: []string{"sec-1"}})
	require.Len(t, got, 1)
	assert.Equal(t, "file-img", got[0].File.ID)

	got = AssetsInWhiteboards(wbSet("wb"), selectTestData(), SectionScope{Exclude: []string{"sec-1"}})
	require.Len(t, got, 1)
	assert.Equal(t, "file-pdf", got[0].File.ID)
}

func TestAggregateTagGroups(t *testing.T) {
	data := &Data{
		TagList:   []Tag{{ID: "tag-go", Name: "go"}, {ID: "tag-free", Name: "free"}},
		TagGroups: []TagGroup{{ID: "grp", Name: "Dev", Tags: []string{"tag-go", "tag-gone"}}},
		Collections: []Collection{
			{ID: "col-go", QueryConfig: QueryConfig{Type: "tag", ID: "tag-go"}},
			{ID: "col-search", QueryConfig: QueryConfig{Type: "search", ID: "x"}},
		},
		CollectionViews: []CollectionView{
			{ID: "view-1", CollectionID: "col-go"},
			{ID: "view-2", CollectionID: "col-go"},
		},
	}

	groups := AggregateTagGroups(data)

	require.Len(t, groups, 2)
	assert.Equal(t, "Dev", groups[0].GroupName)
	require.Len(t, groups[0].Tags, 1)
	assert.Equal(t, "go", groups[0].Tags[0].TagName)
	assert.Len(t, groups[0].Tags[0].Views, 2)

	assert.Empty(t, groups[1].GroupName)
	require.Len(t, groups[1].Tags, 1)
	assert.Equal(t, "free", groups[1].Tags[0].TagName)
	assert.Empty(t, groups[1].Tags[0].Views)
}
