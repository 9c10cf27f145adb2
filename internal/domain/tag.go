package domain

// TagKind separates the skill and category namespaces. A skill and a
// category with the same name are unrelated records.
type TagKind int

const (
	SkillTag TagKind = iota + 1
	CategoryTag
)

func (k TagKind) String() string {
	switch k {
	case SkillTag:
		return "skill"
	case CategoryTag:
		return "category"
	default:
		return "unknown"
	}
}

type Tag struct {
	ID   int64   `json:"id"`
	Kind TagKind `json:"-"`
	Name string  `json:"name"`
}

// Association names one of the four owner<->tag link tables.
type Association int

const (
	ProfileSkills Association = iota + 1
	ProfileCategories
	ProjectSkills
	ProjectCategories
)

// TagKind reports which tag namespace the association points into.
func (a Association) TagKind() TagKind {
	switch a {
	case ProfileSkills, ProjectSkills:
		return SkillTag
	default:
		return CategoryTag
	}
}

// TagLink is one association row: OwnerID is a profile or project id.
type TagLink struct {
	OwnerID int64
	TagID   int64
}

// TagIDs returns the ids of tags, preserving order.
func TagIDs(tags []Tag) []int64 {
	out := make([]int64, 0, len(tags))
	for _, t := range tags {
		out = append(out, t.ID)
	}
	return out
}
