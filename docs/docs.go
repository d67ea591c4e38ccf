// Package docs holds the OpenAPI document served at /swagger/doc.json.
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
        "/api/parse-ozon-report": {
            "post": {
                "description": "Downloads the spreadsheet at file_url and extracts sale and return operations",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["report-parser"],
                "summary": "Parse an Ozon sales report",
                "parameters": [
                    {
                        "description": "Report location",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/dtos.ParseReportRequest"}
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}}
                }
            }
        },
        "/api/parse-ozon-report/upload": {
            "post": {
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["report-parser"],
                "summary": "Parse an uploaded Ozon sales report",
                "parameters": [
                    {
                        "type": "file",
                        "description": "Report file (.xlsx or .xls)",
                        "name": "file",
                        "in": "formData",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "415": {"description": "Unsupported Media Type", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}},
                    "422": {"description": "Unprocessable Entity", "schema": {"$ref": "#/definitions/dtos.ReportEnvelope"}}
                }
            }
        },
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness probe",
                "responses": {"200": {"description": "OK"}}
            }
        }
    },
    "definitions": {
        "dtos.ParseReportRequest": {
            "type": "object",
            "properties": {
                "file_url": {"type": "string", "example": "https://example.com/report.xlsx"},
                "url": {"type": "string", "description": "alias of file_url"}
            }
        },
        "dtos.ErrorBody": {
            "type": "object",
            "properties": {
                "code": {"type": "string", "example": "HeaderNotFound"},
                "message": {"type": "string"},
                "details": {"type": "object"}
            }
        },
        "report_core.Operation": {
            "type": "object",
            "properties": {
                "operation_type": {"type": "string", "enum": ["sale", "return"]},
                "sku": {"type": "string"},
                "quantity": {"type": "number"},
                "amount": {"type": "number"},
                "order_number": {"type": "string", "x-nullable": true},
                "order_date": {"type": "string", "x-nullable": true, "example": "2024-03-01"}
            }
        },
        "report_core.Summary": {
            "type": "object",
            "properties": {
                "sales_count": {"type": "integer"},
                "sales_quantity": {"type": "number"},
                "sales_amount": {"type": "number"},
                "returns_count": {"type": "integer"},
                "returns_quantity": {"type": "number"},
                "returns_amount": {"type": "number"},
                "net_amount": {"type": "number"}
            }
        },
        "dtos.ReportEnvelope": {
            "type": "object",
            "properties": {
                "ok": {"type": "boolean"},
                "source": {"type": "string"},
                "format": {"type": "string", "enum": ["xlsx", "xls"]},
                "sheet": {"type": "string"},
                "count": {"type": "integer"},
                "operations": {"type": "array", "items": {"$ref": "#/definitions/report_core.Operation"}},
                "summary": {"$ref": "#/definitions/report_core.Summary"},
                "layout": {"type": "object"},
                "columns": {"type": "object", "additionalProperties": {"type": "integer"}},
                "error": {"$ref": "#/definitions/dtos.ErrorBody"}
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
	Title:            "Report Parser API",
	Description:      "Marketplace sales report parser.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
