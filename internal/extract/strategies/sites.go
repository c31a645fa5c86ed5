package strategies

import "golang.org/x/net/html"

// Separator between extracted content blocks, so block boundaries
// survive into the diff.
const blockSeparator = "\n\n---\n\n"

// paragraphBlog extracts Paragraph.xyz blog posts: one block per
// article element.
func paragraphBlog(doc *html.Node) (string, bool) {
	articles := findAll(doc, func(n *html.Node) bool {
		return isElement(n, "article")
	})
	return joinNodes(articles, blockSeparator)
}

// charmversePage extracts CharmVerse grant pages via the page-content
// test id.
func charmversePage(doc *html.Node) (string, bool) {
	content := findFirst(doc, func(n *html.Node) bool {
		return attr(n, "data-testid") == "page-content"
	})
	if content == nil {
		return "", false
	}
	text := nodeText(content)
	return text, text != ""
}

// baseBlog extracts Base.org blog listings: any element whose class
// mentions post or article.
func baseBlog(doc *html.Node) (string, bool) {
	posts := findAll(doc, func(n *html.Node) bool {
		return classContains(n, "post") || classContains(n, "article")
	})
	return joinNodes(posts, blockSeparator)
}

// farcasterBlog extracts the Farcaster blog's main element.
func farcasterBlog(doc *html.Node) (string, bool) {
	main := findFirst(doc, func(n *html.Node) bool {
		return isElement(n, "main")
	})
	if main == nil {
		return "", false
	}
	text := nodeText(main)
	return text, text != ""
}

// notionPage extracts Notion pages block by block.
func notionPage(doc *html.Node) (string, bool) {
	blocks := findAll(doc, func(n *html.Node) bool {
		return classContains(n, "notion-block")
	})
	return joinNodes(blocks, "\n")
}

// snapshotSpace extracts Snapshot governance spaces: proposal cards.
func snapshotSpace(doc *html.Node) (string, bool) {
	proposals := findAll(doc, func(n *html.Node) bool {
		return classContains(n, "proposal")
	})
	return joinNodes(proposals, blockSeparator)
}

// discourseForum extracts Discourse topic lists and topic bodies.
func discourseForum(doc *html.Node) (string, bool) {
	topics := findAll(doc, func(n *html.Node) bool {
		return hasClass(n, "topic-list-item") || hasClass(n, "topic-body")
	})
	return joinNodes(topics, blockSeparator)
}

// purpleDAO extracts the Purple DAO site's content container, falling
// back to the main element.
func purpleDAO(doc *html.Node) (string, bool) {
	content := findFirst(doc, func(n *html.Node) bool {
		return classContains(n, "content") || isElement(n, "main")
	})
	if content == nil {
		return "", false
	}
	text := nodeText(content)
	return text, text != ""
}
