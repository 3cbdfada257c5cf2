// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-10-19
// Last Modified: 2026-10-19

package googlecode

import "encoding/xml"

// feed is the Atom document served by the issue tracker API.
type feed struct {
	XMLName xml.Name `xml:"http://www.w3.org/2005/Atom feed"`
	Entries []entry  `xml:"http://www.w3.org/2005/Atom entry"`
}

type entry struct {
	Title     string `xml:"http://www.w3.org/2005/Atom title"`
	Published string `xml:"http://www.w3.org/2005/Atom published"`
	Updated   string `xml:"http://www.w3.org/2005/Atom updated"`
	Content   string `xml:"http://www.w3.org/2005/Atom content"`
	Links     []link `xml:"http://www.w3.org/2005/Atom link"`
	Author    person `xml:"http://www.w3.org/2005/Atom author"`

	ID         string   `xml:"http://schemas.google.com/projecthosting/issues/2009 id"`
	Stars      string   `xml:"http://schemas.google.com/projecthosting/issues/2009 stars"`
	State      string   `xml:"http://schemas.google.com/projecthosting/issues/2009 state"`
	Status     string   `xml:"http://schemas.google.com/projecthosting/issues/2009 status"`
	Labels     []string `xml:"http://schemas.google.com/projecthosting/issues/2009 label"`
	Owner      *owner   `xml:"http://schemas.google.com/projecthosting/issues/2009 owner"`
	ClosedDate string   `xml:"http://schemas.google.com/projecthosting/issues/2009 closedDate"`
}

type link struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
	Href string `xml:"href,attr"`
}

type person struct {
	Name string `xml:"http://www.w3.org/2005/Atom name"`
	URI  string `xml:"http://www.w3.org/2005/Atom uri"`
}

type owner struct {
	Username string `xml:"http://schemas.google.com/projecthosting/issues/2009 username"`
	URI      string `xml:"http://schemas.google.com/projecthosting/issues/2009 uri"`
}

// alternate returns the href of the rel="alternate" link.
func (e *entry) alternate() string {
	for _, l := range e.Links {
		if l.Rel == "alternate" {
			return l.Href
		}
	}
	return ""
}
