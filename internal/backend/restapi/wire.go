package restapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"taskboard/internal/service"
)

// flexBool decodes a completed flag sent either as a JSON boolean or as the
// strings "true"/"false".
type flexBool bool

func (b *flexBool) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "true", `"true"`:
		*b = true
	case "false", `"false"`, `""`, "null":
		*b = false
	default:
		return fmt.Errorf("invalid completed value: %s", data)
	}
	return nil
}

// formatCompleted is the outgoing representation of the completed flag.
// The service stores it as text.
func formatCompleted(completed bool) string {
	return strconv.FormatBool(completed)
}

// wireCategoryRef is a task's category reference: an object, a bare id or null.
type wireCategoryRef struct {
	ID   int64
	Name string
}

func (r *wireCategoryRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*r = wireCategoryRef{}
		return nil
	}

	if data[0] == '{' {
		var obj wireCategory
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		*r = wireCategoryRef{ID: obj.ID, Name: obj.Name}
		return nil
	}

	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return fmt.Errorf("invalid category reference: %s", data)
	}
	*r = wireCategoryRef{ID: id}
	return nil
}

type wireTask struct {
	ID           int64            `json:"id"`
	Title        string           `json:"title"`
	Completed    flexBool         `json:"completed"`
	Category     *wireCategoryRef `json:"category"`
	CategoryName string           `json:"categoryName"`
}

func (w wireTask) toService() service.Task {
	t := service.Task{
		ID:           w.ID,
		Title:        w.Title,
		Completed:    bool(w.Completed),
		CategoryName: w.CategoryName,
	}
	if w.Category != nil {
		t.CategoryID = w.Category.ID
		if t.CategoryName == "" {
			t.CategoryName = w.Category.Name
		}
	}
	return t
}

type wireCategory struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (w wireCategory) toService() service.Category {
	return service.Category{ID: w.ID, Name: w.Name}
}

type categoryRef struct {
	ID int64 `json:"id"`
}

type createTaskRequest struct {
	Title     string       `json:"title"`
	Completed string       `json:"completed"`
	Category  *categoryRef `json:"category"`
}

type editTaskRequest struct {
	Title string `json:"title"`
}

type updateCategoryRequest struct {
	Category int64 `json:"category"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}
