package hb

type AggregatedTag struct {
	TagID   string
	TagName string
	Views   []CollectionView
}

// AggregatedTagGroup is one tag group with its tags and the collection
// views reachable from each tag. GroupName is empty for the trailing
// group of tags that belong to no group.
type AggregatedTagGroup struct {
	GroupName string
	Tags      []AggregatedTag
}

// AggregateTagGroups joins tags, tag-backed collections and their views
// into the structure the selection surface lists: grouped tags first in
// group order, then an unnamed group with every ungrouped tag.
func AggregateTagGroups(data *Data) []AggregatedTagGroup {
	viewsByCollection := make(map[string][]CollectionView)
	for _, view := range data.CollectionViews {
		viewsByCollection[view.CollectionID] = append(viewsByCollection[view.CollectionID], view)
	}
	collectionsByTag := make(map[string][]string)
	for _, collection := range data.Collections {
		if collection.QueryConfig.Type == "tag" {
			collectionsByTag[collection.QueryConfig.ID] = append(collectionsByTag[collection.QueryConfig.ID], collection.ID)
		}
	}
	tagsByID := make(map[string]Tag, len(data.TagList))
	for _, tag := range data.TagList {
		tagsByID[tag.ID] = tag
	}

	viewsForTag := func(tagID string) []CollectionView {
		var views []CollectionView
		for _, collectionID := range collectionsByTag[tagID] {
			views = append(views, viewsByCollection[collectionID]...)
		}
		return views
	}

	var groups []AggregatedTagGroup
	grouped := make(map[string]bool)
	for _, group := range data.TagGroups {
		var tags []AggregatedTag
		for _, tagID := range group.Tags {
			grouped[tagID] = true
			tag, ok := tagsByID[tagID]
			if !ok {
				continue
			}
			tags = append(tags, AggregatedTag{TagID: tagID, TagName: tag.Name, Views: viewsForTag(tagID)})
		}
		if len(tags) > 0 {
			groups = append(groups, AggregatedTagGroup{GroupName: group.Name, Tags: tags})
		}
	}

	var ungrouped []AggregatedTag
	for _, tag := range data.TagList {
		if grouped[tag.ID] {
			continue
		}
		ungrouped = append(ungrouped, AggregatedTag{TagID: tag.ID, TagName: tag.Name, Views: viewsForTag(tag.ID)})
	}
	if len(ungrouped) > 0 {
		groups = append(groups, AggregatedTagGroup{Tags: ungrouped})
	}
	return groups
}
