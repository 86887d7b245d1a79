package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/beevik/etree"

	smodels "github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
)

// feedLimit — сколько последних статей попадает в RSS.
const feedLimit = 50

// Feed отдаёт RSS 2.0 со свежими статьями.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	articles, err := h.Svc.Articles.List(r.Context())
	if err != nil {
		h.Log.LogError("feed", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	doc := h.buildFeed(articles)
	w.Header().Set(ContentType, "application/rss+xml; charset=utf-8")
	if _, err := doc.WriteTo(w); err != nil {
		h.Log.LogError("feed write", err)
	}
}

func (h *Handler) buildFeed(articles []smodels.Article) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	link := strings.TrimRight(h.feed.Link, "/")

	ch := rss.CreateElement("channel")
	ch.CreateElement("title").SetText(h.feed.Title)
	ch.CreateElement("link").SetText(link + "/articles")
	ch.CreateElement("description").SetText(h.feed.Description)
	if len(articles) > 0 {
		ch.CreateElement("lastBuildDate").SetText(articles[0].CreatedAt.UTC().Format(time.RFC1123Z))
	}

	if len(articles) > feedLimit {
		articles = articles[:feedLimit]
	}
	for _, a := range articles {
		item := ch.CreateElement("item")
		item.CreateElement("title").SetText(a.Title)
		item.CreateElement("link").SetText(link + "/articles#" + a.ID)
		item.CreateElement("description").SetText(a.Excerpt)
		item.CreateElement("author").SetText(a.Author)
		item.CreateElement("category").SetText(a.Tag)
		item.CreateElement("pubDate").SetText(a.CreatedAt.UTC().Format(time.RFC1123Z))

		guid := item.CreateElement("guid")
		guid.CreateAttr("isPermaLink", "false")
		guid.SetText(a.ID + "-" + a.Slug)
	}

	doc.Indent(2)
	return doc
}
