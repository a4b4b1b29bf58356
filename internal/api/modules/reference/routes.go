package reference_module

import "github.com/gin-gonic/gin"

// Register routes for the reference module
func RegisterRoutes(g *gin.RouterGroup) {
	g.GET("/instruction-sets", ListInstructionSets)
	g.GET("/instruction-sets/:id", GetInstructionSet)
	g.GET("/example-programs", ListExamplePrograms)
	g.GET("/example-programs/:id", GetExampleProgram)
}
