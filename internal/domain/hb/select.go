package hb

// SectionScope narrows a whiteboard selection to sections. Include and
// Exclude are mutually exclusive; both nil means every card on the
// whiteboard. A card outside every section counts as excluded when
// including and included when excluding.
type SectionScope struct {
	Include []string
	Exclude []string
}

func (s SectionScope) admits(sectionID string, hasSection bool) bool {
	if s.Include != nil {
		return hasSection && sliceContains(s.Include, sectionID)
	}
	if s.Exclude != nil {
		return !hasSection || !sliceContains(s.Exclude, sectionID)
	}
	return true
}

// CardsInWhiteboards returns the cards placed on any of the given
// whiteboards, narrowed by section scope. Order follows the card table.
func CardsInWhiteboards(whiteboardIDs map[string]struct{}, data *Data, scope SectionScope) []Card {
	instanceByCard := make(map[string]CardInstance, len(data.CardInstances))
	for _, ins := range data.CardInstances {
		instanceByCard[ins.CardID] = ins
	}
	// Section relations reference the card instance, not the card.
	sectionByInstance := make(map[string]string)
	for _, rel := range data.SectionObjectRelations {
		if rel.ObjectType == "cardInstance" {
			sectionByInstance[rel.ObjectID] = rel.SectionID
		}
	}

	var out []Card
	for _, card := range data.CardList {
		ins, ok := instanceByCard[card.ID]
		if !ok {
			continue
		}
		if _, ok := whiteboardIDs[ins.WhiteboardID]; !ok {
			continue
		}
		sectionID, hasSection := sectionByInstance[ins.ID]
		if scope.admits(sectionID, hasSection) {
			out = append(out, card)
		}
	}
	return out
}

// WhiteboardAsset is a media element or PDF card admitted by a
// whiteboard selection, joined with its owning whiteboard and file
// record. Exactly one of Media and Pdf is set.
type WhiteboardAsset struct {
	Media      *MediaElement
	Pdf        *PdfCard
	Whiteboard Whiteboard
	File       File
}

// AssetsInWhiteboards returns the media and PDF assets placed on the
// given whiteboards, narrowed by the same section scope as cards.
// Assets without a backing file record are dropped.
func AssetsInWhiteboards(whiteboardIDs map[string]struct{}, data *Data, scope SectionScope) []WhiteboardAsset {
	sectionByObject := make(map[string]string)
	for _, rel := range data.SectionObjectRelations {
		if rel.ObjectType != "cardInstance" {
			sectionByObject[rel.ObjectID] = rel.SectionID
		}
	}
	whiteboards := make(map[string]Whiteboard, len(data.WhiteboardList))
	for _, wb := range data.WhiteboardList {
		whiteboards[wb.ID] = wb
	}
	filesByID := make(map[string]File, len(data.Files))
	for _, file := range data.Files {
		filesByID[file.ID] = file
	}
	pdfInstances := make(map[string]PdfCardInstance, len(data.PdfCardInstances))
	for _, ins := range data.PdfCardInstances {
		pdfInstances[ins.PdfCardID] = ins
	}

	var out []WhiteboardAsset
	for i := range data.MediaElements {
		media := &data.MediaElements[i]
		if _, ok := whiteboardIDs[media.WhiteboardID]; !ok {
			continue
		}
		sectionID, hasSection := sectionByObject[media.ID]
		if !scope.admits(sectionID, hasSection) {
			continue
		}
		file, ok := filesByID[media.FileID]
		if !ok {
			continue
		}
		out = append(out, WhiteboardAsset{Media: media, Whiteboard: whiteboards[media.WhiteboardID], File: file})
	}
	for i := range data.PdfCards {
		pdf := &data.PdfCards[i]
		ins, ok := pdfInstances[pdf.ID]
		if !ok {
			continue
		}
		if _, ok := whiteboardIDs[ins.WhiteboardID]; !ok {
			continue
		}
		sectionID, hasSection := sectionByObject[ins.ID]
		if !scope.admits(sectionID, hasSection) {
			continue
		}
		file, ok := filesByID[pdf.FileID]
		if !ok {
			continue
		}
		out = append(out, WhiteboardAsset{Pdf: pdf, Whiteboard: whiteboards[ins.WhiteboardID], File: file})
	}
	return out
}
