package upload

import (
	"fmt"
	"strings"

	"github.com/aidanlsb/talon/internal/etapi"
)

// labelKeys are the frontmatter keys treated as tag sources.
var labelKeys = []string{"tags", "labels", "categories"}

// TagsFromMetadata collects tags from the recognized frontmatter keys.
// String values are split on commas, list values are flattened, and
// duplicates across keys are removed (first occurrence wins, so the result
// is deterministic for a given document).
func TagsFromMetadata(meta map[string]interface{}) []string {
	var tags []string
	seen := make(map[string]bool)

	add := func(tag string) {
		tag = strings.TrimSpace(tag)
		if tag == "" || seen[tag] {
			return
		}
		seen[tag] = true
		tags = append(tags, tag)
	}

	for _, key := range labelKeys {
		value, ok := meta[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case string:
			for _, tag := range strings.Split(v, ",") {
				add(tag)
			}
		case []interface{}:
			for _, item := range v {
				add(fmt.Sprint(item))
			}
		}
	}

	return tags
}

// SplitTag splits a tag into a label name and value. '/' takes priority
// over '_'; with neither present the whole tag is the name and the value is
// empty. Only the first separator splits, so "period/ancient-greek" yields
// ("period", "ancient-greek").
func SplitTag(tag string) (name, value string) {
	if i := strings.Index(tag, "/"); i >= 0 {
		return tag[:i], tag[i+1:]
	}
	if i := strings.Index(tag, "_"); i >= 0 {
		return tag[:i], tag[i+1:]
	}
	return tag, ""
}

// applyLabels attaches one label attribute per tag derived from metadata.
// Individual attach failures are logged and do not abort the document.
// Returns the number of labels created.
func (u *Uploader) applyLabels(noteID string, meta map[string]interface{}) int {
	if meta == nil {
		return 0
	}

	created := 0
	for _, tag := range TagsFromMetadata(meta) {
		name, value := SplitTag(tag)
		_, err := u.svc.CreateAttribute(etapi.CreateAttributeParams{
			NoteID: noteID,
			Type:   "label",
			Name:   name,
			Value:  value,
		})
		if err != nil {
			u.warnf("add label %q to note %s: %v", tag, noteID, err)
			u.report.LabelFailures++
			continue
		}
		created++
	}

	u.report.LabelsCreated += created
	return created
}
