package sim

import (
	"regexp"
	"strconv"
	"strings"
)

// A Named object is an object that has a name.
type Named interface {
	Name() string
}

var nameTokenRegexp = regexp.MustCompile(
	`^[A-Z][a-zA-Z0-9]*(\[[0-9]+\])*$`)

// NameMustBeValid panics if the name does not follow the naming convention.
// A name is a series of dot-separated tokens organized hierarchically.
// Each token must be CamelCase starting with a capital letter. Elements in
// a series use square-bracket indices, as in "Switch[2].In[0]".
func NameMustBeValid(name string) {
	for _, token := range strings.Split(name, ".") {
		if !nameTokenRegexp.MatchString(token) {
			panic("name " + name + " is not valid: bad token " + token)
		}
	}
}

// BuildName builds a hierarchical name from a parent name and an element
// name.
func BuildName(parentName, elementName string) string {
	if parentName == "" {
		return elementName
	}

	return parentName + "." + elementName
}

// BuildNameWithIndex builds a hierarchical name for an element in a series.
func BuildNameWithIndex(parentName, elementName string, index int) string {
	return BuildName(parentName,
		elementName+"["+strconv.Itoa(index)+"]")
}
