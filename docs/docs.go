// Package docs holds the OpenAPI description served at /swagger/index.html.
// Regenerate with `swag init -g cmd/server/main.go` after changing handler
// annotations.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Service banner",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and database status",
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "Service Unavailable"}
                }
            }
        },
        "/api/audit": {
            "post": {
                "description": "Crawls up to maxPages same-origin pages from url and scores each one.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "Run an audit",
                "parameters": [
                    {
                        "description": "Site to audit",
                        "name": "input",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/model.AuditRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AuditResponse"}},
                    "400": {"description": "error"},
                    "413": {"description": "error"},
                    "429": {"description": "error"},
                    "500": {"description": "error, details"}
                }
            }
        },
        "/api/audits": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "List stored audits (paginated)",
                "parameters": [
                    {"type": "integer", "description": "page", "name": "page", "in": "query"},
                    {"type": "integer", "description": "page_size", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "503": {"description": "error"}
                }
            }
        },
        "/api/audits/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["audits"],
                "summary": "Get one stored audit",
                "parameters": [
                    {"type": "string", "description": "Audit ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/model.AuditResponse"}},
                    "404": {"description": "error"},
                    "503": {"description": "error"}
                }
            }
        }
    },
    "definitions": {
        "model.AuditRequest": {
            "type": "object",
            "required": ["url"],
            "properties": {
                "url": {"type": "string", "example": "https://example.com"},
                "maxPages": {"type": "integer", "example": 5}
            }
        },
        "model.Issue": {
            "type": "object",
            "properties": {
                "severity": {"type": "string", "example": "MEDIUM"},
                "message": {"type": "string", "example": "Missing meta description"}
            }
        },
        "model.SectionResult": {
            "type": "object",
            "properties": {
                "score": {"type": "integer", "example": 80},
                "issues": {"type": "array", "items": {"$ref": "#/definitions/model.Issue"}},
                "recommendations": {"type": "array", "items": {"type": "string"}}
            }
        },
        "model.PageReport": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "status": {"type": "integer"},
                "responseMs": {"type": "integer"},
                "sizeBytes": {"type": "integer"},
                "seo": {"$ref": "#/definitions/model.SectionResult"},
                "security": {"$ref": "#/definitions/model.SectionResult"},
                "performance": {"$ref": "#/definitions/model.SectionResult"},
                "accessibility": {"$ref": "#/definitions/model.SectionResult"}
            }
        },
        "model.CrawlErrorDTO": {
            "type": "object",
            "properties": {
                "url": {"type": "string"},
                "error": {"type": "string"},
                "status": {"type": "integer", "x-nullable": true}
            }
        },
        "model.AuditResponse": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "input": {
                    "type": "object",
                    "properties": {
                        "url": {"type": "string"},
                        "maxPages": {"type": "integer"}
                    }
                },
                "startedAt": {"type": "string", "format": "date-time"},
                "finishedAt": {"type": "string", "format": "date-time"},
                "summary": {
                    "type": "object",
                    "properties": {
                        "pagesScanned": {"type": "integer"},
                        "totalBytes": {"type": "integer"},
                        "averageResponseMs": {"type": "integer"},
                        "errorCount": {"type": "integer"},
                        "averageScores": {
                            "type": "object",
                            "properties": {
                                "seo": {"type": "integer"},
                                "security": {"type": "integer"},
                                "performance": {"type": "integer"},
                                "accessibility": {"type": "integer"}
                            }
                        }
                    }
                },
                "reports": {"type": "array", "items": {"$ref": "#/definitions/model.PageReport"}},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/model.CrawlErrorDTO"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "webhack API",
	Description:      "Crawls a site and scores its pages for SEO, security headers, performance and accessibility.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
