package util

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// DefaultNoteTitle is used when a document carries no title
const DefaultNoteTitle = "Untitled"

const tagsHeadingPrefix = "tags:"

var (
	markdown       = goldmark.New()
	hashtagPattern = regexp.MustCompile(`(?:^|\s)#([\p{L}\p{N}_][\p{L}\p{N}_\-/]*)`)
)

// NoteInfo is the display information derived from a markdown document
// NoteInfo 从 markdown 文档中解析出的标题与标签
type NoteInfo struct {
	Title string
	Tags  []string
}

// ParseNoteInfo derives the title and tags of a markdown document.
//
// Title: frontmatter "title", else the first level-1 heading, else DefaultNoteTitle.
// Tags, in order and de-duplicated: frontmatter "tags", the code spans of a
// "###### tags:" heading, then inline #hashtags found in paragraphs.
func ParseNoteInfo(content string) NoteInfo {
	meta, body, _ := ParseFrontmatter(content)
	src := []byte(body)
	doc := markdown.Parser().Parse(text.NewReader(src))

	info := NoteInfo{Title: FrontmatterString(meta, "title")}
	tags := newTagSet(FrontmatterList(meta, "tags"))

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Heading:
			if node.Level == 1 && info.Title == "" {
				info.Title = strings.TrimSpace(inlineText(node, src, false))
			}
			if node.Level == 6 {
				collectTagsHeading(node, src, tags)
			}
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			for _, m := range hashtagPattern.FindAllStringSubmatch(inlineText(node, src, true), -1) {
				tags.add(m[1])
			}
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	if info.Title == "" {
		info.Title = DefaultNoteTitle
	}
	info.Tags = tags.list
	return info
}

func collectTagsHeading(h *ast.Heading, src []byte, tags *tagSet) {
	label := strings.TrimSpace(inlineText(h, src, true))
	if !strings.HasPrefix(strings.ToLower(label), tagsHeadingPrefix) {
		return
	}
	found := false
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if span, ok := c.(*ast.CodeSpan); ok {
			tags.add(inlineText(span, src, false))
			found = true
		}
	}
	if found {
		return
	}
	// "###### tags: a, b" without code spans
	for _, part := range strings.Split(label[len(tagsHeadingPrefix):], ",") {
		tags.add(part)
	}
}

func inlineText(n ast.Node, src []byte, skipCode bool) string {
	var b strings.Builder
	writeInline(&b, n, src, skipCode)
	return b.String()
}

func writeInline(b *strings.Builder, n ast.Node, src []byte, skipCode bool) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.CodeSpan:
			if !skipCode {
				writeInline(b, t, src, skipCode)
			} else {
				b.WriteByte(' ')
			}
		default:
			writeInline(b, c, src, skipCode)
		}
	}
}

type tagSet struct {
	seen map[string]struct{}
	list []string
}

func newTagSet(initial []string) *tagSet {
	s := &tagSet{seen: map[string]struct{}{}, list: []string{}}
	for _, t := range initial {
		s.add(t)
	}
	return s
}

func (s *tagSet) add(tag string) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return
	}
	if _, ok := s.seen[tag]; ok {
		return
	}
	s.seen[tag] = struct{}{}
	s.list = append(s.list, tag)
}
