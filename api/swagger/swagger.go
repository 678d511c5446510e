package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "CS Study Hub API",
        "description": "Student note-sharing backend",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Authentication", "description": "Student registration and login"},
        {"name": "Notes", "description": "Note upload, listing, search and removal"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "Database unreachable"}
                }
            }
        },
        "/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new student account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/RegisterResult"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Failure"}},
                    "500": {"description": "Store failure", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate a student",
                "description": "Invalid credentials yield HTTP 200 with status \"failed\"",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/LoginResult"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/upload-note": {
            "post": {
                "tags": ["Notes"],
                "summary": "Upload a study note",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "title", "in": "formData", "required": true, "type": "string"},
                    {"name": "subject", "in": "formData", "required": true, "type": "string"},
                    {"name": "semester", "in": "formData", "required": true, "type": "integer"},
                    {"name": "category", "in": "formData", "required": true, "type": "string"},
                    {"name": "user_id", "in": "formData", "required": true, "type": "string"},
                    {"name": "description", "in": "formData", "type": "string"},
                    {"name": "tags", "in": "formData", "type": "string"},
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/UploadResult"}},
                    "400": {"description": "Invalid payload", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/notes": {
            "get": {
                "tags": ["Notes"],
                "summary": "List approved notes, most recent first",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/NotesResult"}}
                }
            }
        },
        "/search": {
            "get": {
                "tags": ["Notes"],
                "summary": "Search approved notes by title or subject",
                "parameters": [
                    {"name": "q", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/SearchResult"}}
                }
            }
        },
        "/files/{filename}": {
            "get": {
                "tags": ["Notes"],
                "summary": "Download a stored note file",
                "produces": ["application/octet-stream"],
                "parameters": [
                    {"name": "filename", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File content"},
                    "404": {"description": "Unknown file", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        },
        "/delete-note/{note_id}": {
            "delete": {
                "tags": ["Notes"],
                "summary": "Delete an owned note and its stored file",
                "parameters": [
                    {"name": "note_id", "in": "path", "required": true, "type": "string"},
                    {"name": "user_id", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/DeleteResult"}},
                    "403": {"description": "Not the owner or note missing", "schema": {"$ref": "#/definitions/Failure"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "uccms_number": {"type": "string"},
                "full_name": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["uccms_number", "full_name", "password"]
        },
        "RegisterResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "uccms_number": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["uccms_number", "password"]
        },
        "LoginResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "user_id": {"type": "string"},
                "uccms": {"type": "string"},
                "name": {"type": "string"},
                "role": {"type": "string"}
            }
        },
        "Note": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "title": {"type": "string"},
                "subject": {"type": "string"},
                "semester": {"type": "integer"},
                "category": {"type": "string"},
                "file_path": {"type": "string"},
                "file_size": {"type": "integer"},
                "file_type": {"type": "string"},
                "description": {"type": "string"},
                "tags": {"type": "string"},
                "uploaded_by": {"type": "string"},
                "upload_status": {"type": "string"},
                "upload_date": {"type": "string"},
                "uploader_name": {"type": "string"}
            }
        },
        "UploadResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "message": {"type": "string"}
            }
        },
        "NotesResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "notes": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Note"}
                }
            }
        },
        "SearchResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "results": {
                    "type": "array",
                    "items": {"$ref": "#/definitions/Note"}
                }
            }
        },
        "DeleteResult": {
            "type": "object",
            "properties": {
                "status": {"type": "string"}
            }
        },
        "Failure": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "code": {"type": "string"},
                "message": {"type": "string"},
                "detail": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
