package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "easyCD API",
        "description": "Academic records: courses, curricula, classrooms, enrollments, complementary activities and solicitations",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"},
        "CookieAuth": {"type": "apiKey", "name": "JWT", "in": "cookie"}
    },
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {"200": {"description": "Ready"}, "503": {"description": "Database unavailable"}}
            }
        },
        "/metrics": {
            "get": {
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {"200": {"description": "OK"}}
            }
        },
        "/api/users/auth": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log in",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid credentials"}, "429": {"description": "Too many attempts"}}
            }
        },
        "/api/users/re-auth": {
            "post": {
                "tags": ["Auth"],
                "summary": "Refresh tokens",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RefreshRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid refresh token"}}
            }
        },
        "/api/users/logout": {
            "post": {
                "tags": ["Auth"],
                "summary": "Log out",
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/users/me": {
            "get": {
                "tags": ["Users"],
                "summary": "Current user and person",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "role", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Users"],
                "summary": "Create user",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateUserRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/users/{id}": {
            "get": {
                "tags": ["Users"],
                "summary": "Get user",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Users"],
                "summary": "Update user",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateUserRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Users"],
                "summary": "Delete user",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/people": {
            "get": {
                "tags": ["People"],
                "summary": "List people",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["People"],
                "summary": "Create people",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreatePersonRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/people/{id}": {
            "get": {
                "tags": ["People"],
                "summary": "Get people",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["People"],
                "summary": "Update people",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdatePersonRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["People"],
                "summary": "Delete people",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/people/{id}/transcript": {
            "get": {
                "tags": ["Records"],
                "summary": "Student transcript",
                "produces": ["application/json", "text/csv", "application/pdf"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/people/{id}/complementary-score": {
            "get": {
                "tags": ["Records"],
                "summary": "Complementary activity score",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/courses": {
            "get": {
                "tags": ["Courses"],
                "summary": "List courses",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "coordinator_id", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Courses"],
                "summary": "Create course",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCourseRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/courses/{id}": {
            "get": {
                "tags": ["Courses"],
                "summary": "Get course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Courses"],
                "summary": "Update course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCourseRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Courses"],
                "summary": "Delete course",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/curriculum-grides": {
            "get": {
                "tags": ["Curriculum Grides"],
                "summary": "List curriculum grides",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "course_id", "in": "query", "type": "string"}, {"name": "active", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Curriculum Grides"],
                "summary": "Create curriculum gride",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCurriculumGrideRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/curriculum-grides/{id}": {
            "get": {
                "tags": ["Curriculum Grides"],
                "summary": "Get curriculum gride",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Curriculum Grides"],
                "summary": "Update curriculum gride",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateCurriculumGrideRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Curriculum Grides"],
                "summary": "Delete curriculum gride",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/subjects": {
            "get": {
                "tags": ["Subjects"],
                "summary": "List subjects",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "curriculum_gride_id", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Subjects"],
                "summary": "Create subject",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSubjectRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/subjects/{id}": {
            "get": {
                "tags": ["Subjects"],
                "summary": "Get subject",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Subjects"],
                "summary": "Update subject",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSubjectRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Subjects"],
                "summary": "Delete subject",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/classrooms": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "List classrooms",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "subject_id", "in": "query", "type": "string"}, {"name": "teacher_id", "in": "query", "type": "string"}, {"name": "semester", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Classrooms"],
                "summary": "Create classroom",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateClassroomRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/classrooms/{id}": {
            "get": {
                "tags": ["Classrooms"],
                "summary": "Get classroom",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Classrooms"],
                "summary": "Update classroom",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateClassroomRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Classrooms"],
                "summary": "Delete classroom",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/enrollments": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "List enrollments",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "student_id", "in": "query", "type": "string"}, {"name": "classroom_id", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Enrollments"],
                "summary": "Create enrollment",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEnrollmentRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/enrollments/{id}": {
            "get": {
                "tags": ["Enrollments"],
                "summary": "Get enrollment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Enrollments"],
                "summary": "Update enrollment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateEnrollmentRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Enrollments"],
                "summary": "Delete enrollment",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/complementary-activity-types": {
            "get": {
                "tags": ["Complementary Activities"],
                "summary": "List complementary activity types",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Complementary Activities"],
                "summary": "Create complementary activity type",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateComplementaryActivityTypeRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/complementary-activity-types/{id}": {
            "get": {
                "tags": ["Complementary Activities"],
                "summary": "Get complementary activity type",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Complementary Activities"],
                "summary": "Update complementary activity type",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateComplementaryActivityTypeRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Complementary Activities"],
                "summary": "Delete complementary activity type",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/complementary-activities": {
            "get": {
                "tags": ["Complementary Activities"],
                "summary": "List complementary activities",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "student_id", "in": "query", "type": "string"}, {"name": "type_id", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Complementary Activities"],
                "summary": "Create complementary activitie",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateComplementaryActivityRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/complementary-activities/{id}": {
            "get": {
                "tags": ["Complementary Activities"],
                "summary": "Get complementary activitie",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Complementary Activities"],
                "summary": "Update complementary activitie",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateComplementaryActivityRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Complementary Activities"],
                "summary": "Delete complementary activitie",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/complementary-activities/{id}/review": {
            "put": {
                "tags": ["Complementary Activities"],
                "summary": "Review activity",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewComplementaryActivityRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/complementary-activities/{id}/evidence": {
            "get": {
                "tags": ["Complementary Activities"],
                "summary": "Download evidence with a signed token",
                "produces": ["application/octet-stream"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "token", "in": "query", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "401": {"description": "Invalid or expired token"}}
            },
            "post": {
                "tags": ["Complementary Activities"],
                "summary": "Upload evidence",
                "consumes": ["multipart/form-data"],
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "file", "in": "formData", "required": true, "type": "file"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/complementary-activities/{id}/evidence/url": {
            "get": {
                "tags": ["Complementary Activities"],
                "summary": "Signed evidence URL",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/solicitation-types": {
            "get": {
                "tags": ["Solicitations"],
                "summary": "List solicitation types",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "search", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Solicitations"],
                "summary": "Create solicitation type",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSolicitationTypeRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/solicitation-types/{id}": {
            "get": {
                "tags": ["Solicitations"],
                "summary": "Get solicitation type",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Solicitations"],
                "summary": "Update solicitation type",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSolicitationTypeRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Solicitations"],
                "summary": "Delete solicitation type",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/solicitations": {
            "get": {
                "tags": ["Solicitations"],
                "summary": "List solicitations",
                "parameters": [{"name": "page", "in": "query", "type": "integer"}, {"name": "page_size", "in": "query", "type": "integer"}, {"name": "sort_by", "in": "query", "type": "string"}, {"name": "sort_order", "in": "query", "type": "string"}, {"name": "student_id", "in": "query", "type": "string"}, {"name": "type_id", "in": "query", "type": "string"}, {"name": "status", "in": "query", "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "post": {
                "tags": ["Solicitations"],
                "summary": "Create solicitation",
                "parameters": [{"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateSolicitationRequest"}}],
                "responses": {"201": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/solicitations/{id}": {
            "get": {
                "tags": ["Solicitations"],
                "summary": "Get solicitation",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}, "404": {"description": "Not found"}}
            },
            "put": {
                "tags": ["Solicitations"],
                "summary": "Update solicitation",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateSolicitationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            },
            "delete": {
                "tags": ["Solicitations"],
                "summary": "Delete solicitation",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/api/solicitations/{id}/teacher-review": {
            "put": {
                "tags": ["Solicitations"],
                "summary": "Teacher review",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewSolicitationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        },
        "/api/solicitations/{id}/coordinator-review": {
            "put": {
                "tags": ["Solicitations"],
                "summary": "Coordinator review",
                "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}, {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ReviewSolicitationRequest"}}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}}
            }
        }
    },
    "definitions": {
        "LoginRequest": {
            "type": "object",
            "required": ["username", "password"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}}
        },
        "RefreshRequest": {
            "type": "object",
            "required": ["refresh_token"],
            "properties": {"refresh_token": {"type": "string"}}
        },
        "CreateUserRequest": {
            "type": "object",
            "required": ["person_id", "username", "password", "role"],
            "properties": {"person_id": {"type": "string"}, "username": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["student", "teacher", "admin"]}}
        },
        "UpdateUserRequest": {
            "type": "object",
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["student", "teacher", "admin"]}}
        },
        "PersonCredentials": {
            "type": "object",
            "required": ["username", "password", "role"],
            "properties": {"username": {"type": "string"}, "password": {"type": "string"}, "role": {"type": "string", "enum": ["student", "teacher", "admin"]}}
        },
        "CreatePersonRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "registration": {"type": "string"}, "phone": {"type": "string"}, "birth_date": {"type": "string", "format": "date-time"}, "user": {"$ref": "#/definitions/PersonCredentials"}}
        },
        "UpdatePersonRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "email": {"type": "string"}, "registration": {"type": "string"}, "phone": {"type": "string"}, "birth_date": {"type": "string", "format": "date-time"}}
        },
        "CreateCourseRequest": {
            "type": "object",
            "required": ["name", "coordinator_id"],
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "coordinator_id": {"type": "string"}}
        },
        "UpdateCourseRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "coordinator_id": {"type": "string"}}
        },
        "CreateCurriculumGrideRequest": {
            "type": "object",
            "required": ["name", "course_id", "dt_start", "dt_end"],
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "course_id": {"type": "string"}, "active": {"type": "boolean"}, "dt_start": {"type": "string", "description": "YYYY-MM-DD or RFC3339", "example": "2024-02-01"}, "dt_end": {"type": "string", "description": "YYYY-MM-DD or RFC3339", "example": "2024-07-01"}}
        },
        "UpdateCurriculumGrideRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "course_id": {"type": "string"}, "active": {"type": "boolean"}, "dt_start": {"type": "string", "description": "YYYY-MM-DD or RFC3339", "example": "2024-02-01"}, "dt_end": {"type": "string", "description": "YYYY-MM-DD or RFC3339", "example": "2024-07-01"}}
        },
        "CreateSubjectRequest": {
            "type": "object",
            "required": ["name", "curriculum_gride_id"],
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "code": {"type": "string"}, "workload": {"type": "integer"}, "curriculum_gride_id": {"type": "string"}}
        },
        "UpdateSubjectRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "code": {"type": "string"}, "workload": {"type": "integer"}, "curriculum_gride_id": {"type": "string"}}
        },
        "CreateClassroomRequest": {
            "type": "object",
            "required": ["name", "subject_id", "teacher_id", "semester"],
            "properties": {"name": {"type": "string"}, "subject_id": {"type": "string"}, "teacher_id": {"type": "string"}, "semester": {"type": "string"}, "capacity": {"type": "integer"}, "schedule": {"type": "string"}}
        },
        "UpdateClassroomRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "subject_id": {"type": "string"}, "teacher_id": {"type": "string"}, "semester": {"type": "string"}, "capacity": {"type": "integer"}, "schedule": {"type": "string"}}
        },
        "CreateEnrollmentRequest": {
            "type": "object",
            "required": ["student_id", "classroom_id"],
            "properties": {"student_id": {"type": "string"}, "classroom_id": {"type": "string"}, "status": {"type": "string", "enum": ["Canceled", "In Progress", "Approved", "Repproved"]}}
        },
        "UpdateEnrollmentRequest": {
            "type": "object",
            "properties": {"student_id": {"type": "string"}, "classroom_id": {"type": "string"}, "status": {"type": "string", "enum": ["Canceled", "In Progress", "Approved", "Repproved"]}, "grade": {"type": "number"}, "frequency": {"type": "number"}}
        },
        "CreateComplementaryActivityTypeRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "score": {"type": "number"}, "max_score": {"type": "number"}}
        },
        "UpdateComplementaryActivityTypeRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}, "score": {"type": "number"}, "max_score": {"type": "number"}}
        },
        "CreateComplementaryActivityRequest": {
            "type": "object",
            "required": ["type_id", "quantity"],
            "properties": {"type_id": {"type": "string"}, "student_id": {"type": "string"}, "description": {"type": "string"}, "evidence": {"type": "string"}, "quantity": {"type": "number"}}
        },
        "UpdateComplementaryActivityRequest": {
            "type": "object",
            "properties": {"type_id": {"type": "string"}, "description": {"type": "string"}, "evidence": {"type": "string"}, "quantity": {"type": "number"}}
        },
        "ReviewComplementaryActivityRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "enum": ["Accepted", "Rejected"]}}
        },
        "CreateSolicitationTypeRequest": {
            "type": "object",
            "required": ["name"],
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        },
        "UpdateSolicitationTypeRequest": {
            "type": "object",
            "properties": {"name": {"type": "string"}, "description": {"type": "string"}}
        },
        "CreateSolicitationRequest": {
            "type": "object",
            "required": ["type_id"],
            "properties": {"type_id": {"type": "string"}, "student_id": {"type": "string"}, "meta": {"type": "object"}}
        },
        "UpdateSolicitationRequest": {
            "type": "object",
            "properties": {"type_id": {"type": "string"}, "meta": {"type": "object"}}
        },
        "ReviewSolicitationRequest": {
            "type": "object",
            "required": ["approved"],
            "properties": {"approved": {"type": "boolean"}, "notes": {"type": "string"}}
        },
        "Pagination": {
            "type": "object",
            "properties": {"page": {"type": "integer"}, "page_size": {"type": "integer"}, "total_count": {"type": "integer"}}
        },
        "APIError": {
            "type": "object",
            "properties": {"code": {"type": "string"}, "message": {"type": "string"}, "status": {"type": "integer"}}
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {"data": {"type": "object"}, "message": {"type": "string"}, "error": {"$ref": "#/definitions/APIError"}, "pagination": {"$ref": "#/definitions/Pagination"}, "meta": {"type": "object"}}
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
