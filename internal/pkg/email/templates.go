package email

import "fmt"

// Template data carriers. Templates are pure functions of their input.

// ConfirmationData feeds the student confirmation template.
type ConfirmationData struct {
	StudentName  string
	StudentEmail string
	ProjectTitle string
}

// NotificationData feeds the professor new-application template.
type NotificationData struct {
	ProfessorName  string
	ProfessorEmail string
	ProjectTitle   string
	StudentName    string
	StudentEmail   string
	StudentMajor   string
	DownloadURL    string // Signed resume-download link
	TrackingURL    string // Tracked click-through link
}

// StatusUpdateData feeds the application status change template.
type StatusUpdateData struct {
	StudentName  string
	StudentEmail string
	ProjectTitle string
	NewStatus    string
}

// ApplicationConfirmationTemplate builds the confirmation sent to a student
// after a successful submission.
func ApplicationConfirmationTemplate(data ConfirmationData) Message {
	subject := fmt.Sprintf("Application Received - %s", data.ProjectTitle)
	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"Your application to \"%s\" has been received. The professor will review it and reach out if there is a fit.\n\n"+
			"Best regards,\nThe Research Portal Team",
		data.StudentName, data.ProjectTitle)
	html := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Received</h2>
				<p>Hello %s,</p>
				<p>Your application to <strong>%s</strong> has been received. The professor will review it and reach out if there is a fit.</p>
				<p>Best regards,<br>The Research Portal Team</p>
			</div>
		</body>
		</html>
	`, data.StudentName, data.ProjectTitle)

	return Message{
		To:       data.StudentEmail,
		ToName:   data.StudentName,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	}
}

// ApplicationNotificationTemplate builds the new-application alert for the
// owning professor. The resume travels as a signed download link, never as
// an attachment.
func ApplicationNotificationTemplate(data NotificationData) Message {
	subject := fmt.Sprintf("New Application - %s", data.ProjectTitle)
	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"%s (%s, %s) has applied to \"%s\".\n\n"+
			"Download the resume: %s\n\n"+
			"View the application: %s\n\n"+
			"Best regards,\nThe Research Portal Team",
		data.ProfessorName, data.StudentName, data.StudentEmail, data.StudentMajor,
		data.ProjectTitle, data.DownloadURL, data.TrackingURL)
	html := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">New Application</h2>
				<p>Hello %s,</p>
				<p><strong>%s</strong> (%s, %s) has applied to <strong>%s</strong>.</p>
				<div style="text-align: center; margin: 30px 0;">
					<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Download Resume</a>
				</div>
				<p><a href="%s">View the application in the portal</a></p>
				<p>Best regards,<br>The Research Portal Team</p>
			</div>
		</body>
		</html>
	`, data.ProfessorName, data.StudentName, data.StudentEmail, data.StudentMajor,
		data.ProjectTitle, data.DownloadURL, data.TrackingURL)

	return Message{
		To:       data.ProfessorEmail,
		ToName:   data.ProfessorName,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	}
}

// StatusUpdateTemplate builds the status-change notice for a student.
func StatusUpdateTemplate(data StatusUpdateData) Message {
	subject := fmt.Sprintf("Application Update - %s", data.ProjectTitle)
	text := fmt.Sprintf(
		"Hello %s,\n\n"+
			"The status of your application to \"%s\" is now %s.\n\n"+
			"Best regards,\nThe Research Portal Team",
		data.StudentName, data.ProjectTitle, data.NewStatus)
	html := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #333;">Application Update</h2>
				<p>Hello %s,</p>
				<p>The status of your application to <strong>%s</strong> is now <strong>%s</strong>.</p>
				<p>Best regards,<br>The Research Portal Team</p>
			</div>
		</body>
		</html>
	`, data.StudentName, data.ProjectTitle, data.NewStatus)

	return Message{
		To:       data.StudentEmail,
		ToName:   data.StudentName,
		Subject:  subject,
		TextBody: text,
		HTMLBody: html,
	}
}
