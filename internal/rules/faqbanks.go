package rules

import "github.com/parkerjr2/seogen/internal/types"

// Per-hub FAQ banks. Question strings are unique across hubs; duplicated
// questions across hub pages read as doorway content to crawlers.
var hubFAQBanks = map[string][]types.FAQ{
	"residential": {
		{
			Question: "Do I need to be home during the service appointment?",
			Answer:   "For most residential services, we recommend having an adult present to provide access, answer questions about your home's history, and approve any additional work if needed. However, if you can't be home, we can often work with lockbox access or coordinate with a trusted neighbor or property manager. We'll discuss the best arrangement during scheduling.",
		},
		{
			Question: "Will you protect my floors and furniture during the work?",
			Answer:   "Yes, we take home protection seriously. Our technicians use drop cloths, floor protection, and shoe covers as standard practice. We'll move furniture if needed (with your permission) and always clean up our work area before leaving. If there's any drywall patching or wall penetrations required, we'll discuss the extent of repairs needed beforehand.",
		},
		{
			Question: "How do I know if my home's system needs upgrading or just repair?",
			Answer:   "During our inspection, we'll assess your system's age, condition, safety, and capacity for your home's needs. We'll explain what's working, what's not, and whether repairs will give you reliable service or if upgrading makes more sense long-term. You'll get honest recommendations with options at different price points, never pressure to replace something that can be properly repaired.",
		},
		{
			Question: "What happens if you find additional problems during the work?",
			Answer:   "If we discover issues beyond the original scope, we'll stop and explain what we found, why it matters, and what it will cost to address. You'll approve any additional work before we proceed. We never perform unauthorized work or surprise you with unexpected charges. Our goal is to keep you informed and in control of decisions about your home.",
		},
		{
			Question: "Do you offer financing for larger home projects?",
			Answer:   "Yes, we offer financing options for qualifying homeowners on approved credit. This can make larger projects like whole-home upgrades or system replacements more manageable with monthly payments. We'll provide financing information during your estimate so you can make the best decision for your family's budget.",
		},
		{
			Question: "How long will my home be without service during the work?",
			Answer:   "For most residential repairs, service is restored the same day. For larger projects like panel upgrades or system replacements, we'll schedule the work to minimize disruption and clearly communicate the timeline. We understand your family depends on these systems, so we work efficiently and keep you informed of progress throughout the project.",
		},
	},
	"commercial": {
		{
			Question: "Can you work outside of business hours to avoid disrupting operations?",
			Answer:   "Yes, we regularly schedule commercial work during evenings, weekends, and overnight hours to minimize impact on your business operations. Our technicians are experienced with after-hours work and understand the importance of having your facility ready for business the next day. We'll coordinate timing that works best for your operation.",
		},
		{
			Question: "Who handles the permit applications and inspection scheduling?",
			Answer:   "We handle all permit applications and coordinate required inspections as part of our commercial service. We're familiar with local commercial code requirements and inspection processes. You'll receive copies of all permits and inspection reports for your facility records and compliance documentation.",
		},
		{
			Question: "Do you provide documentation for insurance and compliance audits?",
			Answer:   "Yes, we provide detailed documentation including work orders, inspection reports, permits, and compliance certificates. This documentation is essential for insurance requirements, safety audits, and regulatory compliance. We understand commercial properties need thorough records and we maintain organized documentation for your facility management files.",
		},
		{
			Question: "What's included in a commercial maintenance contract?",
			Answer:   "Commercial maintenance contracts typically include scheduled inspections, preventive maintenance, priority service response, detailed reporting, and often discounted rates on repairs. We'll customize a maintenance program based on your facility type, equipment, and operational requirements. Regular maintenance helps prevent unexpected downtime and extends equipment life.",
		},
		{
			Question: "How do you coordinate with other contractors during tenant improvements?",
			Answer:   "We're experienced working as part of construction teams on tenant improvement projects. We'll coordinate with general contractors, architects, and other trades to ensure our work integrates smoothly with the overall project schedule. We attend coordination meetings, provide timely updates, and work efficiently to keep projects on track.",
		},
		{
			Question: "What's your response time for commercial emergency calls?",
			Answer:   "For commercial emergencies affecting business operations, we prioritize rapid response. Response times vary based on time of day and technician availability, but we understand business downtime costs money. Maintenance contract customers receive priority response. We'll provide an estimated arrival time when you call and keep you updated if circumstances change.",
		},
	},
	"emergency": {
		{
			Question: "How quickly can someone get to my property for an emergency?",
			Answer:   "Emergency response times vary based on technician location, time of day, and current call volume. When you call, we'll provide an estimated arrival time based on real-time availability. We prioritize true emergencies involving safety hazards or significant property damage. Our goal is to get a qualified technician to you as quickly as possible to assess and stabilize the situation.",
		},
		{
			Question: "What qualifies as an emergency versus a regular service call?",
			Answer:   "Emergencies involve immediate safety hazards, active property damage, or complete loss of essential services. Examples include exposed wiring, flooding from failed systems, or total loss of heating in winter. If you're unsure whether your situation is an emergency, call us and describe the problem. We'll help you determine the appropriate response level and timing.",
		},
		{
			Question: "Will the emergency technician have the parts needed to fix my problem?",
			Answer:   "Our emergency service vehicles stock common parts and materials for typical urgent repairs. However, some situations require specialized parts that must be ordered. In those cases, the technician will stabilize the situation, make it safe, and schedule a follow-up visit to complete permanent repairs once parts arrive. We'll explain the temporary measures and timeline for final resolution.",
		},
		{
			Question: "How much do emergency services cost compared to regular appointments?",
			Answer:   "Emergency service typically includes premium rates for after-hours availability, rapid response, and immediate technician dispatch. The exact cost depends on the time of day, day of week, and complexity of the work required. We'll provide pricing information when you call so you can make an informed decision. In true emergencies involving safety or property protection, the cost of immediate service is often justified by preventing greater damage or hazards.",
		},
		{
			Question: "Can you make temporary repairs if I can't afford the full fix right now?",
			Answer:   "In many emergency situations, we can provide temporary stabilization to make things safe and functional while you arrange for permanent repairs. We'll explain what temporary measures are possible, how long they'll last, and what permanent repairs will be needed. Our priority in emergencies is safety and preventing further damage, and we'll work with you on solutions that fit your immediate circumstances.",
		},
		{
			Question: "What should I do while waiting for emergency service to arrive?",
			Answer:   "When you call, we'll provide specific safety instructions based on your situation. General guidance includes staying away from hazards, shutting off affected systems if safe to do so, protecting property from ongoing damage if possible, and ensuring clear access for our technician. Never put yourself at risk trying to fix emergency situations. Wait for professional help in a safe location.",
		},
	},
	"repair": {
		{
			Question: "How do you diagnose problems that only happen intermittently?",
			Answer:   "Intermittent problems require systematic diagnostic approaches. We'll gather information about when the problem occurs, what conditions trigger it, and any patterns you've noticed. Our technicians use diagnostic tools to test components under various conditions and may need to monitor the system over time. We'll explain our diagnostic process and may recommend follow-up visits if the problem doesn't occur during our initial visit.",
		},
		{
			Question: "Do you charge for diagnostics even if I don't proceed with repairs?",
			Answer:   "Yes, diagnostic time and expertise have value regardless of whether you proceed with repairs. We'll explain diagnostic fees upfront before starting work. The diagnostic fee typically covers the service call, inspection, testing, and a written assessment of the problem and repair options. If you proceed with recommended repairs, we often apply the diagnostic fee toward the repair cost.",
		},
		{
			Question: "How do I know if repair makes sense versus replacing the whole system?",
			Answer:   "We consider several factors: the system's age, overall condition, repair cost versus replacement cost, likelihood of future problems, efficiency of current versus new systems, and your long-term plans. We'll provide honest recommendations explaining the pros and cons of repair versus replacement. Our goal is to help you make the best decision for your situation, not to sell you a replacement you don't need.",
		},
		{
			Question: "What if the repair doesn't fix the problem?",
			Answer:   "We warranty our repair work. If the problem persists after our repair, we'll return to reassess at no additional diagnostic charge. Sometimes problems have multiple causes or symptoms point to different issues than initially diagnosed. We'll work with you until the problem is properly resolved, standing behind our diagnostic work and repairs.",
		},
		{
			Question: "Can you give me a repair estimate before starting the work?",
			Answer:   "After diagnosing the problem, we'll provide a detailed repair estimate including parts, labor, and any other costs before starting repairs. You'll approve the estimate before we proceed. If we discover additional issues during repairs, we'll stop and get your approval for any additional work and costs.",
		},
		{
			Question: "How long do repairs typically last?",
			Answer:   "Repair longevity depends on what was repaired, the quality of parts used, the system's overall condition, and how well it's maintained. We use quality parts and proper repair techniques to maximize repair life. We'll give you realistic expectations about repair longevity and let you know if the system's age or condition means repairs may only be a short-term solution.",
		},
	},
	"installation": {
		{
			Question: "How do I choose the right system size and specifications for my needs?",
			Answer:   "Proper sizing requires evaluating your property's specific requirements including square footage, usage patterns, existing infrastructure, and future needs. We'll conduct a thorough assessment, explain sizing considerations, and recommend options that match your needs and budget. Oversized or undersized systems can lead to problems, so we take sizing seriously and provide detailed explanations of our recommendations.",
		},
		{
			Question: "What's included in your installation estimate?",
			Answer:   "Our installation estimates include equipment, materials, labor, permits, inspections, testing, and cleanup. We itemize costs so you understand what you're paying for. The estimate also includes project timeline, warranty information, and any ongoing maintenance recommendations. We'll explain everything included and answer questions about the scope of work.",
		},
		{
			Question: "How long does a typical installation project take?",
			Answer:   "Installation timelines vary based on project complexity, permit requirements, and coordination with other trades. Simple installations might take a day, while complex projects could take several days or weeks. We'll provide a realistic timeline in your estimate and keep you informed of progress. We schedule installations to minimize disruption and complete work efficiently without compromising quality.",
		},
		{
			Question: "Who obtains the permits and schedules inspections?",
			Answer:   "We handle all permit applications and inspection scheduling as part of our installation service. We're familiar with local permitting requirements and inspection processes. You'll receive copies of permits and inspection approvals for your records. Proper permitting protects you by ensuring work meets code and won't cause issues with insurance or future property sales.",
		},
		{
			Question: "Can you coordinate with my other contractors?",
			Answer:   "Yes, we regularly work as part of larger construction or renovation projects. We'll coordinate with your general contractor, architect, or other trades to ensure our work integrates smoothly with the overall project. We attend coordination meetings, provide timely updates, and work efficiently to keep projects on schedule.",
		},
		{
			Question: "What warranties come with new installations?",
			Answer:   "New installations include our workmanship warranty plus manufacturer warranties on equipment and materials. Warranty terms vary by manufacturer and product type. We'll explain all applicable warranties, help you understand what's covered, and assist with warranty claims if needed. We also offer extended warranty options on some equipment.",
		},
	},
	"maintenance": {
		{
			Question: "What's actually included in a maintenance visit?",
			Answer:   "Maintenance visits typically include visual inspection, cleaning of key components, testing of safety controls, checking for wear or damage, adjusting settings for optimal performance, and identifying potential problems before they cause failures. We'll provide a detailed checklist of what we inspect and service. After each visit, you'll receive a report documenting our findings and any recommendations.",
		},
		{
			Question: "How often should I schedule maintenance service?",
			Answer:   "Maintenance frequency depends on your system type, age, usage, and manufacturer recommendations. Most residential systems benefit from annual maintenance, while commercial systems or heavily-used equipment may need more frequent service. We'll recommend an appropriate schedule based on your specific situation and help you stay on track with service reminders.",
		},
		{
			Question: "Will regular maintenance really prevent breakdowns?",
			Answer:   "While maintenance can't prevent every possible failure, it significantly reduces breakdown risk by catching problems early, keeping systems clean and properly adjusted, and ensuring components are working correctly. Regular maintenance extends equipment life, maintains efficiency, and often prevents the most common failure modes. It's like regular oil changes for your car: not a guarantee, but proven to prevent many problems.",
		},
		{
			Question: "What happens if you find problems during a maintenance visit?",
			Answer:   "If we discover issues during maintenance, we'll explain what we found, why it matters, and what should be done about it. We'll categorize findings by urgency: immediate safety concerns, repairs needed soon, and items to monitor. You'll receive a written report and estimate for any recommended repairs. Maintenance customers often receive priority scheduling and discounted rates on repairs.",
		},
		{
			Question: "Can I do some maintenance myself to save money?",
			Answer:   "Some basic maintenance tasks like changing filters or keeping areas clean can be done by property owners. However, comprehensive maintenance requires specialized tools, training, and knowledge of what to look for. We'll explain which tasks you can handle and which require professional service. DIY maintenance doesn't replace professional service but can complement it between scheduled visits.",
		},
		{
			Question: "Do maintenance programs include repairs or just inspections?",
			Answer:   "Maintenance programs typically include inspections, cleaning, adjustments, and minor repairs like replacing worn belts or cleaning contacts. Major repairs or parts replacement are usually additional costs. We'll clearly explain what's included in your maintenance program and what would be considered additional repair work. Some programs offer discounts on repairs for members.",
		},
	},
}
