// Package pagelens analyzes a single webpage with a hosted generative model.
// It fetches the page, strips boilerplate, asks the model for a structured
// content and SEO analysis, and renders the result as sections or Markdown.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., gemini/, goquery/, gin/).
package pagelens
