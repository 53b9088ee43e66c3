package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck-simple/dto"
	"github.com/taskdeck-simple/services"
)

var projectService = services.NewProjectService()

// ListProjects returns every project the caller is a member of
func ListProjects(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	projects, err := projectService.List(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "OK",
		"projects": projects,
	})
}

// GetProject returns one project by ID
func GetProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	project, err := projectService.Get(c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"project": project,
	})
}

// CreateProject creates a project with the caller as its first admin member
func CreateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	project, err := projectService.Create(userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Project created successfully",
		"project": project,
	})
}

// UpdateProject modifies a project's title or description
func UpdateProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request data: " + err.Error(),
		})
		return
	}

	project, err := projectService.Update(c.Param("id"), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project updated successfully",
		"project": project,
	})
}

// ArchiveProject archives a project
func ArchiveProject(c *gin.Context) {
	setProjectArchived(c, true, "Project archived")
}

// UnarchiveProject restores an archived project
func UnarchiveProject(c *gin.Context) {
	setProjectArchived(c, false, "Project unarchived")
}

func setProjectArchived(c *gin.Context, archived bool, message string) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	project, err := projectService.SetArchived(c.Param("id"), userID, archived)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": message,
		"project": project,
	})
}

// DeleteProject removes a project and everything scoped to it
func DeleteProject(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := projectService.Delete(c.Param("id"), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Project deleted successfully",
	})
}
