package utils

import (
	"coursex/config"
	"fmt"
	"log"
	"net/smtp"
)

// SendCourseCompletionEmail congratulates a student who reached 100%
// progress. Skipped silently when SMTP is not configured.
func SendCourseCompletionEmail(email, name, courseTitle string) error {
	if config.AppConfig.SMTPHost == "" {
		log.Printf("SMTP not configured, skipping completion email to %s", email)
		return nil
	}

	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password // App password

	to := []string{email}

	subject := "Subject: Congratulations on completing your course!\nMIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #333333; text-align: center;">Congratulations, %s!</h2>
					<p style="font-size: 16px; color: #555555; text-align: center;">You have completed</p>
					<h1 style="text-align: center; color: #4CAF50; font-size: 28px; margin: 20px 0;">%s</h1>
					<p style="font-size: 14px; color: #999999; text-align: center;">Your certificate is now available from your dashboard.</p>
				</div>
			</body>
		</html>
	`, name, courseTitle)

	message := []byte(subject + "\n" + body)

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, message); err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}

	return nil
}
