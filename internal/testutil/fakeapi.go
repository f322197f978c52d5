package testutil

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
)

// RecordedRequest is one request received by FakeAPI.
type RecordedRequest struct {
	Method string
	Path   string
	Body   string
	Header http.Header
}

// FakeAPI is an in-memory HTTP rendition of the remote task service, served
// through httptest. Routes mirror the real API.
type FakeAPI struct {
	URL string

	mu         sync.Mutex
	tasks      []service.Task
	categories []service.Category
	nextTaskID int64
	nextCatID  int64
	requests   []RecordedRequest
	failures   map[string]int
	malformed  map[string]bool

	// BoolCompleted makes responses carry completed as a JSON boolean
	// instead of the "true"/"false" strings.
	BoolCompleted bool
}

// NewFakeAPI starts a FakeAPI that is shut down when the test ends.
func NewFakeAPI(t *testing.T) *FakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	api := &FakeAPI{
		nextTaskID: 1,
		nextCatID:  1,
		failures:   make(map[string]int),
		malformed:  make(map[string]bool),
	}

	srv := httptest.NewServer(api.router())
	t.Cleanup(srv.Close)
	api.URL = srv.URL
	return api
}

// Fail makes every request to route (e.g. "PUT /task/updateTask/:id") answer with status.
func (a *FakeAPI) Fail(route string, status int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.failures[route] = status
}

// Malform makes route answer 200 with a body that is not valid JSON.
func (a *FakeAPI) Malform(route string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.malformed[route] = true
}

// SeedCategory stores a category.
func (a *FakeAPI) SeedCategory(name string) service.Category {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addCategory(name)
}

// SeedTask stores a task, optionally in a category.
func (a *FakeAPI) SeedTask(title string, completed bool, categoryID int64) service.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.addTask(title, completed, categoryID)
}

// Tasks returns a copy of the stored tasks.
func (a *FakeAPI) Tasks() []service.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]service.Task, len(a.tasks))
	copy(result, a.tasks)
	return result
}

// Requests returns the requests received so far.
func (a *FakeAPI) Requests() []RecordedRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	result := make([]RecordedRequest, len(a.requests))
	copy(result, a.requests)
	return result
}

// LastRequest returns the most recent request.
func (a *FakeAPI) LastRequest() RecordedRequest {
	reqs := a.Requests()
	if len(reqs) == 0 {
		return RecordedRequest{}
	}
	return reqs[len(reqs)-1]
}

func (a *FakeAPI) router() *gin.Engine {
	r := gin.New()
	r.Use(a.intercept)

	r.GET("/task/getTasks", a.listTasks)
	r.POST("/task/addTask", a.createTask)
	r.DELETE("/task/deleteTask/:id", a.deleteTask)
	r.PUT("/task/updateTask/:id", a.toggleTask)
	r.PUT("/task/editTask/:id", a.editTask)
	r.PUT("/task/updateCatagory/:id", a.updateCategory)
	r.GET("/category/getAll", a.listCategories)
	r.POST("/category/addCategory", a.createCategory)
	return r
}

// intercept records the request and applies injected failures.
func (a *FakeAPI) intercept(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))

	route := c.Request.Method + " " + c.FullPath()

	a.mu.Lock()
	a.requests = append(a.requests, RecordedRequest{
		Method: c.Request.Method,
		Path:   c.Request.URL.Path,
		Body:   string(body),
		Header: c.Request.Header.Clone(),
	})
	status := a.failures[route]
	malformed := a.malformed[route]
	a.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": "injected failure"})
		return
	}
	if malformed {
		c.Data(http.StatusOK, "application/json", []byte("{not json"))
		c.Abort()
		return
	}
	c.Next()
}

func (a *FakeAPI) taskJSON(t service.Task) gin.H {
	var completed any = strconv.FormatBool(t.Completed)
	if a.BoolCompleted {
		completed = t.Completed
	}

	h := gin.H{
		"id":        t.ID,
		"title":     t.Title,
		"completed": completed,
		"category":  nil,
	}
	if t.CategoryID != 0 {
		h["category"] = gin.H{"id": t.CategoryID, "name": t.CategoryName}
		h["categoryName"] = t.CategoryName
	}
	return h
}

func (a *FakeAPI) listTasks(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]gin.H, 0, len(a.tasks))
	for _, t := range a.tasks {
		out = append(out, a.taskJSON(t))
	}
	c.JSON(http.StatusOK, out)
}

type fakeCreateTask struct {
	Title     string `json:"title"`
	Completed string `json:"completed"`
	Category  *struct {
		ID int64 `json:"id"`
	} `json:"category"`
}

func (a *FakeAPI) createTask(c *gin.Context) {
	var req fakeCreateTask
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid task"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	var categoryID int64
	if req.Category != nil {
		categoryID = req.Category.ID
		if _, ok := service.FindCategory(a.categories, categoryID); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "unknown category"})
			return
		}
	}
	t := a.addTask(req.Title, req.Completed == "true", categoryID)
	c.JSON(http.StatusOK, a.taskJSON(t))
}

func (a *FakeAPI) deleteTask(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.taskIndex(c)
	if !ok {
		return
	}
	a.tasks = append(a.tasks[:i], a.tasks[i+1:]...)

	out := make([]gin.H, 0, len(a.tasks))
	for _, t := range a.tasks {
		out = append(out, a.taskJSON(t))
	}
	c.JSON(http.StatusOK, out)
}

func (a *FakeAPI) toggleTask(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.taskIndex(c)
	if !ok {
		return
	}
	a.tasks[i].Completed = !a.tasks[i].Completed
	c.JSON(http.StatusOK, a.taskJSON(a.tasks[i]))
}

func (a *FakeAPI) editTask(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.taskIndex(c)
	if !ok {
		return
	}
	a.tasks[i].Title = req.Title
	c.JSON(http.StatusOK, a.taskJSON(a.tasks[i]))
}

func (a *FakeAPI) updateCategory(c *gin.Context) {
	var req struct {
		Category int64 `json:"category"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid body"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	i, ok := a.taskIndex(c)
	if !ok {
		return
	}
	cat, found := service.FindCategory(a.categories, req.Category)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "category not found"})
		return
	}
	a.tasks[i].CategoryID = cat.ID
	a.tasks[i].CategoryName = cat.Name
	c.JSON(http.StatusOK, gin.H{"id": cat.ID, "name": cat.Name})
}

func (a *FakeAPI) listCategories(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]gin.H, 0, len(a.categories))
	for _, cat := range a.categories {
		out = append(out, gin.H{"id": cat.ID, "name": cat.Name})
	}
	c.JSON(http.StatusOK, out)
}

func (a *FakeAPI) createCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid category"})
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	cat := a.addCategory(req.Name)
	c.JSON(http.StatusOK, gin.H{"id": cat.ID, "name": cat.Name})
}

// taskIndex resolves :id, writing a 404 when absent. Caller holds a.mu.
func (a *FakeAPI) taskIndex(c *gin.Context) (int, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err == nil {
		for i, t := range a.tasks {
			if t.ID == id {
				return i, true
			}
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "task not found"})
	return 0, false
}

func (a *FakeAPI) addCategory(name string) service.Category {
	cat := service.Category{ID: a.nextCatID, Name: name}
	a.nextCatID++
	a.categories = append(a.categories, cat)
	return cat
}

func (a *FakeAPI) addTask(title string, completed bool, categoryID int64) service.Task {
	t := service.Task{ID: a.nextTaskID, Title: title, Completed: completed}
	a.nextTaskID++
	if cat, ok := service.FindCategory(a.categories, categoryID); ok {
		t.CategoryID = cat.ID
		t.CategoryName = cat.Name
	}
	a.tasks = append(a.tasks, t)
	return t
}
