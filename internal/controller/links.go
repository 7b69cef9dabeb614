package controller

import "fmt"

// Routes is the route-template set for one resource, rooted at a base path
// such as "/api/products". Link generation is a pure function of the route
// set and an entity ID; it never queries storage.
type Routes struct {
	Base string
}

// List returns the collection URI.
func (r Routes) List() string { return r.Base }

// Entity returns the URI of a single entity.
func (r Routes) Entity(id int64) string {
	return fmt.Sprintf("%s/%d", r.Base, id)
}

// entityLinks builds the navigation links for a single entity. The update and
// delete relations share the entity URI; the verb distinguishes them.
func (r Routes) entityLinks(id int64) map[string]string {
	uri := r.Entity(id)
	return map[string]string{
		"self":   uri,
		"update": uri,
		"delete": uri,
	}
}

// listLinks builds the navigation links for the collection.
func (r Routes) listLinks() map[string]string {
	return map[string]string{"self": r.List()}
}
