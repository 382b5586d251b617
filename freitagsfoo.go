// Package freitagsfoo extracts structured event data from the weekly
// Freitagsfoo wiki page: the hosts and date of the meetup and the talks
// announced for it, each with its presenters and a description.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package freitagsfoo
