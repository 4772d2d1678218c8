// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"strings"

	"github.com/pdiddy/litpipe/pkg/types"
)

const (
	unknownField = "unknown"
	notSpecified = "not specified"
)

// PubMed efetch XML structures. Only the fields the extractor reads are
// declared.
type articleSet struct {
	Articles []pubmedArticle `xml:"PubmedArticle"`
}

type pubmedArticle struct {
	Citation medlineCitation `xml:"MedlineCitation"`
}

type medlineCitation struct {
	Article article `xml:"Article"`
}

type article struct {
	Title       string       `xml:"ArticleTitle"`
	Journal     journal      `xml:"Journal"`
	ArticleDate articleDate  `xml:"ArticleDate"`
	Abstract    abstract     `xml:"Abstract"`
	Authors     []author     `xml:"AuthorList>Author"`
}

type journal struct {
	Title string  `xml:"Title"`
	Issue pubDate `xml:"JournalIssue>PubDate"`
}

type articleDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type pubDate struct {
	Year  string `xml:"Year"`
	Month string `xml:"Month"`
	Day   string `xml:"Day"`
}

type abstract struct {
	Sections []abstractText `xml:"AbstractText"`
}

type abstractText struct {
	Label string `xml:"Label,attr"`
	Text  string `xml:",chardata"`
}

type author struct {
	LastName string `xml:"LastName"`
	Initials string `xml:"Initials"`
}

// extractRecord builds a PaperRecord from one article element, filling
// sentinels for absent fields and classifying the methods text with the
// deterministic rule.
func extractRecord(a article) types.PaperRecord {
	title := strings.TrimSpace(a.Title)
	if title == "" {
		title = unknownField
	}

	journalName := strings.TrimSpace(a.Journal.Title)
	if journalName == "" {
		journalName = unknownField
	}

	methods, conclusion := abstractSections(a.Abstract)

	return types.PaperRecord{
		Title:             title,
		PublishDate:       publishDate(a),
		JournalName:       journalName,
		MethodsOriginal:   methods,
		MethodsClassified: types.ClassifyMethod(methods),
		Conclusion:        conclusion,
		Authors:           authorNames(a.Authors),
	}
}

// publishDate prefers the print date (JournalIssue/PubDate) and falls back
// to the electronic date (ArticleDate). Parts present are joined as
// Year-Month-Day; no parts yields "unknown".
func publishDate(a article) string {
	if d := joinDate(a.Journal.Issue.Year, a.Journal.Issue.Month, a.Journal.Issue.Day); d != "" {
		return d
	}
	if d := joinDate(a.ArticleDate.Year, a.ArticleDate.Month, a.ArticleDate.Day); d != "" {
		return d
	}
	return unknownField
}

func joinDate(year, month, day string) string {
	var parts []string
	for _, p := range []string{year, month, day} {
		if s := strings.TrimSpace(p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, "-")
}

// abstractSections splits the abstract into methods and conclusion text.
// Labeled METHODS and CONCLUSION sections are used when present; an
// unlabeled abstract contributes its full text as methods. Missing
// sections become "not specified".
func abstractSections(ab abstract) (methods, conclusion string) {
	var unlabeled []string
	for _, sec := range ab.Sections {
		text := strings.TrimSpace(sec.Text)
		if text == "" {
			continue
		}
		switch strings.ToUpper(sec.Label) {
		case "METHODS":
			if methods == "" {
				methods = text
			}
		case "CONCLUSION":
			if conclusion == "" {
				conclusion = text
			}
		default:
			unlabeled = append(unlabeled, text)
		}
	}

	if methods == "" {
		methods = strings.Join(unlabeled, " ")
	}
	if methods == "" {
		methods = notSpecified
	}
	if conclusion == "" {
		conclusion = notSpecified
	}
	return methods, conclusion
}

// authorNames formats each author as "LastName Initials", skipping entries
// without a last name. An empty result is replaced by the sentinel entry.
func authorNames(authors []author) []string {
	var names []string
	for _, a := range authors {
		last := strings.TrimSpace(a.LastName)
		if last == "" {
			continue
		}
		if initials := strings.TrimSpace(a.Initials); initials != "" {
			names = append(names, last+" "+initials)
		} else {
			names = append(names, last)
		}
	}
	if len(names) == 0 {
		return []string{types.UnknownAuthor}
	}
	return names
}
