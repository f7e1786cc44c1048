package view

import (
	"strconv"
	"time"

	g "maragu.dev/gomponents"
	hx "maragu.dev/gomponents-htmx"
	. "maragu.dev/gomponents/html"

	"chatbot-backend/internal/models"
)

const htmxSrc = "https://unpkg.com/htmx.org@2.0.4"

// showAskError reveals the banner when the form post gets no swappable
// answer: an error status htmx refuses to swap, or no response at all.
var showAskError = "var b=document.getElementById('chat-error');" +
	"b.firstElementChild.textContent=" + strconv.Quote(models.AskFailedMessage) + ";" +
	"b.hidden=false"

// Page renders the full chat document with the seeded messages in the order
// given.
func Page(messages []*models.ChatMessage) g.Node {
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text("AI Chatbot")),
				Script(Src(htmxSrc)),
			),
			Body(
				Class("min-h-screen bg-gray-50 p-4"),
				Main(
					Class("max-w-4xl mx-auto"),
					H1(Class("text-4xl font-bold text-gray-800 mb-2"), g.Text("AI Chatbot")),
					P(Class("text-gray-600"), g.Text("Ask me anything and I'll do my best to help!")),
					MessageList(messages),
					ErrorBanner(""),
					askForm(),
					P(Class("text-xs text-gray-500"), g.Text("Press Enter to send. Max 1000 characters.")),
				),
			),
		),
	)
}

// MessageList renders the scrollable message area, or the empty state when
// there is nothing to show yet.
func MessageList(messages []*models.ChatMessage) g.Node {
	return Div(
		ID("chat-messages"),
		Class("h-96 overflow-y-auto rounded-md border p-4 space-y-4"),
		g.If(len(messages) == 0, emptyState()),
		g.Map(messages, Message),
	)
}

func emptyState() g.Node {
	return Div(
		ID("chat-empty"),
		Class("flex flex-col items-center justify-center h-full text-gray-500"),
		P(Class("text-lg"), g.Text("Start a conversation!")),
		P(Class("text-sm"), g.Text("Type your question below to get started.")),
	)
}

// Message renders one question and its answer.
func Message(msg *models.ChatMessage) g.Node {
	return Div(
		Class("space-y-3"),
		g.Attr("data-message-id", strconv.FormatInt(msg.ID, 10)),
		Div(
			Class("flex justify-end"),
			Div(
				Class("bg-blue-500 text-white rounded-lg px-4 py-2"),
				P(Class("text-sm font-medium"), g.Text("You")),
				P(g.Text(msg.Question)),
			),
		),
		Div(
			Class("flex justify-start"),
			Div(
				Class("bg-gray-200 text-gray-800 rounded-lg px-4 py-2"),
				P(Class("text-sm font-medium text-blue-600"), g.Text("AI Assistant")),
				P(g.Text(msg.Answer)),
				P(Class("text-xs text-gray-500 mt-2"),
					g.El("time", g.Attr("datetime", msg.CreatedAt.UTC().Format(time.RFC3339)), g.Text(msg.CreatedAt.UTC().Format("15:04:05"))),
				),
			),
		),
	)
}

// ErrorBanner renders the error slot. An empty message renders it hidden.
func ErrorBanner(message string) g.Node {
	return errorBanner(message)
}

func errorBanner(message string, extra ...g.Node) g.Node {
	return Div(
		ID("chat-error"),
		g.If(message == "", g.Attr("hidden")),
		Class("bg-red-50 border border-red-200 text-red-700 px-4 py-3 rounded-md"),
		g.Attr("role", "alert"),
		g.Group(extra),
		P(Class("text-sm"), g.Text(message)),
	)
}

// AskSucceeded is the htmx response to a successful submit: the new message
// for the list plus out-of-band updates clearing the error and the empty
// state.
func AskSucceeded(msg *models.ChatMessage) g.Node {
	return g.Group{
		Message(msg),
		errorBanner("", hx.SwapOOB("true")),
		Div(ID("chat-empty"), hx.SwapOOB("delete")),
	}
}

// AskFailed leaves the list untouched and shows the generic error.
func AskFailed() g.Node {
	return errorBanner(models.AskFailedMessage, hx.SwapOOB("true"))
}

func askForm() g.Node {
	return g.El("form",
		ID("chat-form"),
		Class("flex gap-2"),
		hx.Post("/view/ask"),
		hx.Target("#chat-messages"),
		hx.Swap("beforeend"),
		g.Attr("hx-disabled-elt", "find button, find input"),
		// Form values are collected before this event, so the input clears
		// as soon as the post starts.
		g.Attr("hx-on::before-request", "this.reset()"),
		g.Attr("hx-on::response-error", showAskError),
		g.Attr("hx-on::send-error", showAskError),
		Input(
			Type("text"),
			Name("question"),
			Placeholder("Type your question here..."),
			g.Attr("maxlength", "1000"),
			g.Attr("pattern", `.*\S.*`),
			g.Attr("autocomplete", "off"),
			Required(),
		),
		Button(Type("submit"), Class("bg-blue-500 text-white px-6"), g.Text("Send")),
	)
}
