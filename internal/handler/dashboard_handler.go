package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/locvowork/census_dashboard/internal/dashboard"
	"github.com/locvowork/census_dashboard/internal/logger"
	"github.com/locvowork/census_dashboard/internal/service"
	"github.com/locvowork/census_dashboard/internal/service/serviceutils"
	"github.com/locvowork/census_dashboard/pkg/tabular"
)

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeCSV  = "text/csv; charset=utf-8"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
.errorColor { background-color: #f8d7da; }
.warningColor { background-color: #fff3cd; }
th.header, th.asc, th.desc { cursor: pointer; }
th.asc::after { content: " \25B2"; }
th.desc::after { content: " \25BC"; }
.tableCell.largeText { font-size: 1.25em; }
.tableCell.centerAlign { text-align: center; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p id="{{.StatusID}}">{{.Status}}</p>
<div id="{{.ContainerID}}">{{.Table}}</div>
<script>
document.getElementById({{.ContainerID}}).addEventListener("click", function (ev) {
  var th = ev.target.closest("th[data-sort-url]");
  if (!th) { return; }
  var container = ev.currentTarget;
  fetch(th.dataset.sortUrl, { method: "POST" })
    .then(function (resp) { return resp.text(); })
    .then(function (html) { container.innerHTML = html; });
});
</script>
</body>
</html>
`))

type pageData struct {
	Title       string
	Status      string
	StatusID    string
	ContainerID string
	Table       template.HTML
}

type DashboardHandler struct {
	svc service.DashboardService
}

func NewDashboardHandler(svc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// selectorID turns "#census-last-updated" into "census-last-updated".
func selectorID(selector string) string {
	if len(selector) > 0 && selector[0] == '#' {
		return selector[1:]
	}
	return selector
}

func sortURL(name string) func(string) string {
	return func(column string) string {
		return "/dashboards/" + url.PathEscape(name) + "/sort/" + url.PathEscape(column)
	}
}

func fragment(p *service.Page) (template.HTML, error) {
	return tabular.HTML(p.View, tabular.HTMLOptions{SortURL: sortURL(p.Dashboard.Name)})
}

func (h *DashboardHandler) RedirectHandler(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/dashboards/"+dashboard.CensusName)
}

// WritePage writes the full dashboard page for p.
func WritePage(w io.Writer, p *service.Page) error {
	table, err := fragment(p)
	if err != nil {
		return err
	}

	title := p.Dashboard.Title
	if title == "" {
		title = p.Dashboard.Name
	}
	statusID := selectorID(p.Dashboard.StatusElement)
	if statusID == "" {
		statusID = p.Dashboard.Name + "-last-updated"
	}

	return pageTemplate.Execute(w, pageData{
		Title:       title,
		Status:      p.Status,
		StatusID:    statusID,
		ContainerID: selectorID(p.View.Target),
		Table:       table,
	})
}

func (h *DashboardHandler) PageHandler(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")

	p, err := h.svc.Page(ctx, name)
	if err != nil {
		logger.ErrorLog(ctx, "render dashboard %s: %v", name, err)
		return serviceutils.ResponseError(c, serviceutils.StatusCode(err), "Failed to render dashboard", err)
	}

	var buf bytes.Buffer
	if err := WritePage(&buf, p); err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render page", err)
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func (h *DashboardHandler) TableHandler(c echo.Context) error {
	ctx := c.Request().Context()
	p, err := h.svc.Page(ctx, c.Param("name"))
	if err != nil {
		return serviceutils.ResponseError(c, serviceutils.StatusCode(err), "Failed to render table", err)
	}
	return h.writeFragment(c, p)
}

func (h *DashboardHandler) SortHandler(c echo.Context) error {
	ctx := c.Request().Context()
	column, err := url.PathUnescape(c.Param("column"))
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid column", err)
	}
	p, err := h.svc.Sort(ctx, c.Param("name"), column)
	if err != nil {
		return serviceutils.ResponseError(c, serviceutils.StatusCode(err), "Failed to sort table", err)
	}
	return h.writeFragment(c, p)
}

func (h *DashboardHandler) writeFragment(c echo.Context, p *service.Page) error {
	table, err := fragment(p)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to render table", err)
	}
	return c.HTML(http.StatusOK, string(table))
}

func (h *DashboardHandler) RefreshHandler(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")
	p, err := h.svc.Refresh(ctx, name)
	if err != nil {
		logger.ErrorLog(ctx, "refresh dashboard %s: %v", name, err)
		return serviceutils.ResponseError(c, serviceutils.StatusCode(err), "Failed to refresh dashboard", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, p.Status, map[string]interface{}{
		"id":   p.View.ID,
		"rows": len(p.View.Rows),
	})
}

func (h *DashboardHandler) TableJSONHandler(c echo.Context) error {
	p, err := h.svc.Page(c.Request().Context(), c.Param("name"))
	if err != nil {
		return serviceutils.ResponseError(c, serviceutils.StatusCode(err), "Failed to load table", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, p.Status, p.View)
}

func (h *DashboardHandler) ExportXLSXHandler(c echo.Context) error {
	return h.export(c, service.FormatXLSX, contentTypeXLSX)
}

func (h *DashboardHandler) ExportCSVHandler(c echo.Context) error {
	return h.export(c, service.FormatCSV, contentTypeCSV)
}

func (h *DashboardHandler) export(c echo.Context, format, contentType string) error {
	ctx := c.Request().Context()
	name := c.Param("name")

	var buf bytes.Buffer
	if err := h.svc.Export(ctx, name, format, &buf); err != nil {
		return serviceutils.ResponseError(c, serviceutils.StatusCode(err), "Failed to export dashboard", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s.%s"`, name, format))
	c.Response().Header().Set(echo.HeaderContentLength, strconv.Itoa(buf.Len()))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}
