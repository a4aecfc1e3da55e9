package hb

import "fmt"

type SectionNode struct {
	ID       string
	Title    string
	Children []*SectionNode
}

// WhiteboardTree is one whiteboard with its placement instance, nested
// child whiteboards and the section forest drawn on it.
type WhiteboardTree struct {
	Whiteboard
	Instance WhiteboardInstance
	Children []*WhiteboardTree
	Sections []*SectionNode
}

// BuildWhiteboardTree reconstructs the whiteboard containment forest from
// the flat whiteboard and placement tables. A whiteboard without a
// placement instance cannot be positioned anywhere; it is skipped and
// reported as a warning. Trashed whiteboards are dropped from the root
// level only, so one nested under a live parent stays reachable.
func BuildWhiteboardTree(data *Data) ([]*WhiteboardTree, []string) {
	instanceByWhiteboard := make(map[string]WhiteboardInstance, len(data.WhiteboardInstances))
	for _, ins := range data.WhiteboardInstances {
		if _, ok := instanceByWhiteboard[ins.WhiteboardID]; !ok {
			instanceByWhiteboard[ins.WhiteboardID] = ins
		}
	}

	var warnings []string
	nodes := make(map[string]*WhiteboardTree, len(data.WhiteboardList))
	order := make([]string, 0, len(data.WhiteboardList))
	for _, wb := range data.WhiteboardList {
		ins, ok := instanceByWhiteboard[wb.ID]
		if !ok {
			warnings = append(warnings, fmt.Sprintf("whiteboard %q (%s) has no placement instance, skipping", wb.Name, wb.ID))
			continue
		}
		nodes[wb.ID] = &WhiteboardTree{
			Whiteboard: wb,
			Instance:   ins,
			Sections:   SectionsInWhiteboard(wb.ID, data),
		}
		order = append(order, wb.ID)
	}

	var roots []*WhiteboardTree
	for _, id := range order {
		node := nodes[id]
		if node.Instance.ContainerType == "whiteboard" {
			if parent, ok := nodes[node.Instance.ContainerID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		if !node.IsTrashed {
			roots = append(roots, node)
		}
	}
	return roots, warnings
}

// SectionsInWhiteboard builds the section forest for one whiteboard.
// Parent-child edges come from section-object relations of object type
// "section"; a section is a root iff no relation names it as a child.
func SectionsInWhiteboard(whiteboardID string, data *Data) []*SectionNode {
	byID := make(map[string]*SectionNode)
	var ordered []*SectionNode
	for _, section := range data.Sections {
		if section.WhiteboardID != whiteboardID {
			continue
		}
		node := &SectionNode{ID: section.ID, Title: section.Title}
		byID[section.ID] = node
		ordered = append(ordered, node)
	}

	isChild := make(map[string]bool)
	for _, rel := range data.SectionObjectRelations {
		if rel.ObjectType != "section" {
			continue
		}
		child := byID[rel.ObjectID]
		if child == nil {
			continue
		}
		isChild[rel.ObjectID] = true
		if parent := byID[rel.SectionID]; parent != nil {
			parent.Children = append(parent.Children, child)
		}
	}

	var roots []*SectionNode
	for _, node := range ordered {
		if !isChild[node.ID] {
			roots = append(roots, node)
		}
	}
	return roots
}

// CardsInSection lists the card-instance ids placed in a section or any
// of its descendant sections.
func CardsInSection(sectionID string, data *Data) []string {
	var cards []string
	var walk func(id string)
	walk = func(id string) {
		for _, rel := range data.SectionObjectRelations {
			if rel.SectionID != id {
				continue
			}
			switch rel.ObjectType {
			case "cardInstance":
				cards = append(cards, rel.ObjectID)
			case "section":
				walk(rel.ObjectID)
			}
		}
	}
	walk(sectionID)
	return cards
}
