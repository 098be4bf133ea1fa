package render

import (
	"strings"

	"resume-builder/resume/model"
)

// Page geometry and spacing, in PDF points with the origin at the bottom-left.
const (
	PageWidth  = 612.0
	PageHeight = 792.0

	headerHeight = 120.0
	footerHeight = 20.0
	ruleInset    = 40.0
	ruleWidth    = 2.0

	headerX     = 50.0
	nameOffset  = 60.0
	titleOffset = 80.0
	infoOffset  = 100.0
	ruleOffset  = 150.0
	firstOffset = 30.0

	headingX     = 50.0
	bodyX        = 70.0
	headingStep  = 22.0
	lineStep     = 16.0
	blankStep    = 8.0
	sectionGap   = 10.0
	skillsStep   = 20.0
	BottomMargin = 60.0
	TopOffset    = 80.0

	contactSeparator = " | "
	bullet           = "• "
)

// Fonts used by the layout. Family names are PDF core fonts.
var (
	nameFont    = Font{Family: "Helvetica", Style: "B", Size: 24}
	titleFont   = Font{Family: "Helvetica", Size: 14}
	infoFont    = Font{Family: "Helvetica", Size: 11}
	headingFont = Font{Family: "Helvetica", Style: "B", Size: 16}
	BodyFont    = Font{Family: "Helvetica", Size: 11}
)

// Font is a core font selection.
type Font struct {
	Family string
	Style  string
	Size   float64
}

// OpKind identifies a drawing operation.
type OpKind int

const (
	OpRect OpKind = iota
	OpLine
	OpText
)

// Op is an absolutely-positioned drawing operation. Rects use X/Y as the
// bottom-left corner; lines run from X/Y to X2/Y2; text is drawn with its
// baseline at X/Y.
type Op struct {
	Kind      OpKind
	X, Y      float64
	W, H      float64
	X2, Y2    float64
	LineWidth float64
	Color     RGB
	Font      Font
	Text      string
}

// Page is the ordered list of operations on one page.
type Page struct {
	Ops []Op
}

// RenderedDocument is the laid-out document before serialization.
type RenderedDocument struct {
	Title string
	Pages []Page
}

// Texts returns the text runs on page i in drawing order.
func (d RenderedDocument) Texts(i int) []Op {
	var out []Op
	for _, op := range d.Pages[i].Ops {
		if op.Kind == OpText {
			out = append(out, op)
		}
	}
	return out
}

// PageCursor is the vertical position on the current page.
type PageCursor struct {
	Page int
	Y    float64
}

// TextState is the font and colour applied to body text. It survives page
// breaks so text on a new page looks like the text before it.
type TextState struct {
	Font  Font
	Color RGB
}

// RenderContext carries the cursor, the active text state and the pages
// drawn so far. Contexts are values: every step returns the next context and
// callers must not reuse a context after passing it on.
type RenderContext struct {
	Cursor PageCursor
	Text   TextState
	Pages  []Page
}

func newContext() RenderContext {
	return RenderContext{
		Cursor: PageCursor{Page: 0, Y: PageHeight},
		Text:   TextState{Font: BodyFont, Color: black},
		Pages:  []Page{{}},
	}
}

func (ctx RenderContext) advance(dy float64) RenderContext {
	ctx.Cursor.Y -= dy
	return ctx
}

// ensureRoom starts a new page when the cursor has dropped below the bottom
// margin. The text state is carried over unchanged.
func (ctx RenderContext) ensureRoom() RenderContext {
	if ctx.Cursor.Y >= BottomMargin {
		return ctx
	}
	ctx.Pages = append(ctx.Pages, Page{})
	ctx.Cursor = PageCursor{Page: len(ctx.Pages) - 1, Y: PageHeight - TopOffset}
	return ctx
}

func (ctx RenderContext) withText(font Font, color RGB) RenderContext {
	ctx.Text = TextState{Font: font, Color: color}
	return ctx
}

func (ctx RenderContext) draw(op Op) RenderContext {
	page := &ctx.Pages[ctx.Cursor.Page]
	page.Ops = append(page.Ops, op)
	return ctx
}

// text draws s at x on the cursor line using the current text state.
func (ctx RenderContext) text(x float64, s string) RenderContext {
	ctx = ctx.ensureRoom()
	return ctx.draw(Op{Kind: OpText, X: x, Y: ctx.Cursor.Y, Font: ctx.Text.Font, Color: ctx.Text.Color, Text: s})
}

// Layout places content on pages using the theme colours.
func Layout(content model.Content, theme Theme) RenderedDocument {
	ctx := newContext()
	ctx = drawHeader(ctx, content, theme)

	ctx = drawSection(ctx, "EDUCATION", content.EducationLines(), theme, bulletAll)
	ctx = drawSection(ctx, "EXPERIENCE", content.ExperienceLines(), theme, bulletDetails)
	ctx = drawSkills(ctx, content.SkillsLine(), theme)

	ctx = ctx.draw(Op{Kind: OpRect, X: 0, Y: 0, W: PageWidth, H: footerHeight, Color: theme.Footer})

	return RenderedDocument{Title: DisplayName(content.Name), Pages: ctx.Pages}
}

func drawHeader(ctx RenderContext, content model.Content, theme Theme) RenderContext {
	ctx = ctx.draw(Op{Kind: OpRect, X: 0, Y: PageHeight - headerHeight, W: PageWidth, H: headerHeight, Color: theme.Header})
	ctx = ctx.draw(Op{Kind: OpText, X: headerX, Y: PageHeight - nameOffset, Font: nameFont, Color: white, Text: DisplayName(content.Name)})

	if title := strings.TrimSpace(content.Title); title != "" {
		ctx = ctx.draw(Op{Kind: OpText, X: headerX, Y: PageHeight - titleOffset, Font: titleFont, Color: white, Text: title})
	}
	if fields := content.Contact.Fields(); len(fields) > 0 {
		ctx = ctx.draw(Op{Kind: OpText, X: headerX, Y: PageHeight - infoOffset, Font: infoFont, Color: white, Text: strings.Join(fields, contactSeparator)})
	}

	ruleY := PageHeight - ruleOffset
	ctx = ctx.draw(Op{Kind: OpLine, X: ruleInset, Y: ruleY, X2: PageWidth - ruleInset, Y2: ruleY, LineWidth: ruleWidth, Color: theme.Accent})
	ctx.Cursor.Y = ruleY - firstOffset
	return ctx
}

func bulletAll(model.Line) bool { return true }

func bulletDetails(l model.Line) bool { return l.Kind == model.LineDetail }

func drawSection(ctx RenderContext, title string, lines []model.Line, theme Theme, bulleted func(model.Line) bool) RenderContext {
	if !model.HasContent(lines) {
		return ctx
	}

	ctx = ctx.withText(headingFont, theme.Accent).text(headingX, title).advance(headingStep)
	ctx = ctx.withText(BodyFont, black)

	for _, line := range lines {
		if line.Kind == model.LineBlank || strings.TrimSpace(line.Text) == "" {
			ctx = ctx.advance(blankStep)
			continue
		}
		s := strings.TrimSpace(line.Text)
		if bulleted(line) {
			s = bullet + s
		}
		ctx = ctx.text(bodyX, s).advance(lineStep)
	}
	return ctx.advance(sectionGap)
}

func drawSkills(ctx RenderContext, skills string, theme Theme) RenderContext {
	if model.IsPlaceholder(skills) {
		return ctx
	}
	ctx = ctx.withText(headingFont, theme.Accent).text(headingX, "SKILLS").advance(headingStep)
	ctx = ctx.withText(BodyFont, black)
	return ctx.text(bodyX, skills).advance(skillsStep)
}

// DisplayName is the name shown in the header, "Unnamed" when blank.
func DisplayName(name string) string {
	if n := strings.TrimSpace(name); n != "" {
		return n
	}
	return "Unnamed"
}
