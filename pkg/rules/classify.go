package rules

import "fmt"

// Classifier maps a sprite category to a color code. A nil Classifier means
// no color is attached.
type Classifier func(category string) string

// ConstantColor ignores the category.
func ConstantColor(color string) Classifier {
	return func(string) string { return color }
}

// DefaultBucket is the sentinel bucket for categories outside every group.
const DefaultBucket = "default"

// Group is one named color bucket and the categories that belong to it.
type Group struct {
	Bucket     string   `yaml:"bucket"`
	Color      string   `yaml:"color"`
	Categories []string `yaml:"categories"`
}

// GroupedClassifier partitions known categories into color buckets.
type GroupedClassifier struct {
	bucketOf     map[string]string
	colorOf      map[string]string
	defaultColor string
}

// NewGroupedClassifier builds the category lookup. A category listed in two
// buckets is a configuration error.
func NewGroupedClassifier(groups []Group, defaultColor string) (*GroupedClassifier, error) {
	g := &GroupedClassifier{
		bucketOf:     make(map[string]string),
		colorOf:      map[string]string{DefaultBucket: defaultColor},
		defaultColor: defaultColor,
	}
	for _, group := range groups {
		if group.Bucket == "" || group.Bucket == DefaultBucket {
			return nil, fmt.Errorf("invalid bucket name %q", group.Bucket)
		}
		if _, dup := g.colorOf[group.Bucket]; dup {
			return nil, fmt.Errorf("bucket %q defined twice", group.Bucket)
		}
		g.colorOf[group.Bucket] = group.Color
		for _, category := range group.Categories {
			if prev, ok := g.bucketOf[category]; ok {
				return nil, fmt.Errorf("category %q is in bucket %q and %q", category, prev, group.Bucket)
			}
			g.bucketOf[category] = group.Bucket
		}
	}
	return g, nil
}

// Bucket returns the bucket of category, DefaultBucket when unknown.
func (g *GroupedClassifier) Bucket(category string) string {
	if bucket, ok := g.bucketOf[category]; ok {
		return bucket
	}
	return DefaultBucket
}

// Color returns the color of the category's bucket.
func (g *GroupedClassifier) Color(category string) string {
	return g.colorOf[g.Bucket(category)]
}

// Classifier adapts g to the Classifier function type.
func (g *GroupedClassifier) Classifier() Classifier {
	return g.Color
}

// Categories returns the number of categories with an explicit bucket.
func (g *GroupedClassifier) Categories() int {
	return len(g.bucketOf)
}
